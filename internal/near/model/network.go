// Package model holds the NEAR wire envelope and the relational rows derived from it.
package model

type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// Settings keys used as durable watermarks.
const (
	SettingIndexerLastHeight = "indexer_last_height"
	SettingDailyStatsSync    = "daily_stats_sync"
)
