//go:build integration

package postgres

import (
	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/shopspring/decimal"
)

func (s *RepositorySuite) TestDailyStats_ApplyAccumulatesOnce() {
	s.metrics.EXPECT().Observe("insert_block_records", gomock.Nil(), gomock.Any())
	s.metrics.EXPECT().Observe("daily_stats_between", gomock.Nil(), gomock.Any()).Times(2)
	s.metrics.EXPECT().Observe("apply_daily_stats", gomock.Nil(), gomock.Any()).Times(2)
	s.metrics.EXPECT().Observe("apply_daily_stats", gomock.Not(gomock.Nil()), gomock.Any())

	records := []model.BlockRecords{
		newBlockRecords(1, "r1", newTransfer("r1", 1, 0, "alice.near", -5)),
		newBlockRecords(2, "r2", newTransfer("r2", 2, 0, "alice.near", -5)),
	}
	s.Require().NoError(s.repo.InsertBlockRecords(s.testCtx, records, model.SettingIndexerLastHeight, 2))

	first, err := s.repo.DailyStatsBetween(s.testCtx, 0, 1)
	s.Require().NoError(err)
	s.Require().NoError(s.repo.ApplyDailyStats(s.testCtx, first, model.SettingDailyStatsSync, 0, 1))

	err = s.repo.ApplyDailyStats(s.testCtx, first, model.SettingDailyStatsSync, 0, 1)
	s.Require().ErrorIs(err, ErrStaleWatermark)

	second, err := s.repo.DailyStatsBetween(s.testCtx, 1, 2)
	s.Require().NoError(err)
	s.Require().NoError(s.repo.ApplyDailyStats(s.testCtx, second, model.SettingDailyStatsSync, 1, 2))

	var (
		outgoing, incoming, events int64
		deposit                    string
	)
	err = s.repo.writePool.QueryRow(s.testCtx, `
SELECT outgoing_receipts, incoming_receipts, token_events, deposit_amount_total::text
FROM account_daily_stats WHERE account_id = 'alice.near'`).Scan(&outgoing, &incoming, &events, &deposit)
	s.Require().NoError(err)
	s.Equal(int64(2), outgoing)
	s.Equal(int64(0), incoming)
	s.Equal(int64(2), events)
	s.True(decimal.Zero.Equal(decimal.RequireFromString(deposit)))

	err = s.repo.writePool.QueryRow(s.testCtx, `
SELECT incoming_receipts, deposit_amount_total::text
FROM account_daily_stats WHERE account_id = 'token.near'`).Scan(&incoming, &deposit)
	s.Require().NoError(err)
	s.Equal(int64(2), incoming)
	s.True(decimal.NewFromInt(10).Equal(decimal.RequireFromString(deposit)))
}
