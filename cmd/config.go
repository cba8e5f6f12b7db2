package cmd

type Config struct {
	HTTPPort         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSslMode        string
	CourierAPIURL    string
	CourierAPIKey    string
	CourierTimeoutMs string
	LedgerOwner      string
}
