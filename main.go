package main

import (
	// 系统缺少时区数据库时仍能加载 America/Bogota
	_ "time/tzdata"

	"gastos/commands"
)

// @title 个人记账 API
// @version 1.0
// @description 本地个人记账：交易、类别、账户查询，月度统计、实时订阅和 Excel 导出
// @host localhost:8080
// @BasePath /

func main() {
	commands.Execute()
}
