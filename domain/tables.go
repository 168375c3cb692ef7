package domain

type Table string

const (
	TableLandTokens      Table = "land_tokens"
	TableCollections     Table = "collections"
	TableBids            Table = "bids"
	TableTransactions    Table = "transactions"
	TablePriceHistories  Table = "price_histories"
	TableValidationAudit Table = "validation_audit"
)
