package model

// ================ Config ================
type CatalogConfig struct {
	Path string `envconfig:"CATALOG_PATH" default:"products.csv"`
}

// CustomerConfig seeds the shopper's account. Balance is a decimal string.
type CustomerConfig struct {
	Name    string `envconfig:"CUSTOMER_NAME" default:"ahmed"`
	Balance string `envconfig:"CUSTOMER_BALANCE" default:"30000"`
}

// JournalConfig controls the Redis receipt journal.
type JournalConfig struct {
	TTL string `envconfig:"RECEIPT_TTL" default:"24h"`
}

// MetricsConfig sets the /metrics listen address; empty disables it.
type MetricsConfig struct {
	Addr string `envconfig:"METRICS_ADDR"`
}
