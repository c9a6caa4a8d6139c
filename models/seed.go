package models

import "github.com/shopspring/decimal"

// DefaultCategories 首次启动时写入的默认类别（11 个支出、3 个收入、1 个转账）
func DefaultCategories() []Category {
	cats := []Category{
		// 支出
		{Name: "Comida", Type: TypeExpense, Icon: "🍽️", Color: "#FF6B6B"},
		{Name: "Transporte", Type: TypeExpense, Icon: "🚗", Color: "#4ECDC4"},
		{Name: "Entretenimiento", Type: TypeExpense, Icon: "🎬", Color: "#9B59B6"},
		{Name: "Compras", Type: TypeExpense, Icon: "🛒", Color: "#3498DB"},
		{Name: "Servicios", Type: TypeExpense, Icon: "💡", Color: "#F39C12"},
		{Name: "Salud", Type: TypeExpense, Icon: "💊", Color: "#E74C3C"},
		{Name: "Educación", Type: TypeExpense, Icon: "📚", Color: "#1ABC9C"},
		{Name: "Hogar", Type: TypeExpense, Icon: "🏠", Color: "#95A5A6"},
		{Name: "Tecnología", Type: TypeExpense, Icon: "💻", Color: "#2C3E50"},
		{Name: "Suscripciones", Type: TypeExpense, Icon: "📱", Color: "#8E44AD"},
		{Name: "Otros", Type: TypeExpense, Icon: "📦", Color: "#7F8C8D"},

		// 收入
		{Name: "Salario", Type: TypeIncome, Icon: "💰", Color: "#27AE60"},
		{Name: "Freelance", Type: TypeIncome, Icon: "💼", Color: "#2ECC71"},
		{Name: "Inversiones", Type: TypeIncome, Icon: "📈", Color: "#16A085"},

		// 转账
		{Name: "Transferencia", Type: TypeTransfer, Icon: "↔️", Color: "#3498DB"},
	}
	for i := range cats {
		cats[i].IsActive = true
	}
	return cats
}

// DefaultAccounts 首次启动时写入的默认账户
func DefaultAccounts() []Account {
	accts := []Account{
		{Name: "Bancolombia Débito", Type: AccountChecking, Institution: "bancolombia", LastFour: "7799", Balance: decimal.Zero, Color: "#FFD700", Icon: "💳"},
		{Name: "Nequi", Type: AccountSavings, Institution: "nequi", LastFour: "0000", Balance: decimal.Zero, Color: "#FF69B4", Icon: "📱"},
		{Name: "Efectivo", Type: AccountCash, Institution: "cash", LastFour: "0000", Balance: decimal.Zero, Color: "#2ECC71", Icon: "💵"},
		{Name: "Bancolombia Crédito", Type: AccountCreditCard, Institution: "bancolombia", LastFour: "1234", Balance: decimal.Zero, Color: "#E74C3C", Icon: "💳"},
	}
	for i := range accts {
		accts[i].IsActive = true
	}
	return accts
}
