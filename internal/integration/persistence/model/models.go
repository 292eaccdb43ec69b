package model

// All returns every model managed by AutoMigrate, keyed by table name.
func All() map[string]any {
	return map[string]any{
		UserModel{}.TableName():         &UserModel{},
		RefreshTokenModel{}.TableName(): &RefreshTokenModel{},
		AccountModel{}.TableName():      &AccountModel{},
		TransactionModel{}.TableName():  &TransactionModel{},
		BudgetSetModel{}.TableName():    &BudgetSetModel{},
	}
}
