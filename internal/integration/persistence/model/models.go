package model

// All returns every model managed by the ledger, in migration order.
func All() []interface{} {
	return []interface{}{
		&ProfileModel{},
		&CategoryModel{},
		&FixedTemplateModel{},
		&FixedInstanceModel{},
		&TransactionModel{},
	}
}
