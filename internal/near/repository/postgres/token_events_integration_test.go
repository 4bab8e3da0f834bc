//go:build integration

package postgres

import (
	"time"

	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/goodnatureofminers/nearinsight-backend/pkg/pagination"
)

func (s *RepositorySuite) TestTokenEvents_PagesThroughWindows() {
	s.metrics.EXPECT().Observe("insert_block_records", gomock.Nil(), gomock.Any())
	s.metrics.EXPECT().Observe("scan_token_events", gomock.Nil(), gomock.Any()).AnyTimes()

	hour := uint64(time.Hour)
	now := time.Unix(0, int64(100*hour))

	var records []model.BlockRecords
	var want []pagination.Key
	for i, ts := range []uint64{99 * hour, 97 * hour, 90 * hour, 60 * hour, 10 * hour} {
		height := uint64(i + 1)
		ev := newTransfer("r"+string(rune('a'+i)), ts, 0, "alice.near", -1)
		ev.BlockHeight = height
		rec := newBlockRecords(height, ev.EmittedForReceiptID, ev)
		records = append(records, rec)
		want = append(want, TokenEventKey(ev))
	}
	s.Require().NoError(s.repo.InsertBlockRecords(s.testCtx, records, model.SettingIndexerLastHeight, 5))

	engine := pagination.New[model.TokenEvent](pagination.Config{
		Schedule: pagination.Schedule{Initial: time.Hour, Factor: 2, MaxWidenings: 10},
		Now:      func() time.Time { return now },
	}, TokenEventKey, nil)
	query := s.repo.TokenEvents(TokenEventFilter{EventType: model.EventTypeFT, AccountID: "alice.near"})

	var got []pagination.Key
	req := pagination.Request{Limit: 2}
	for i := 0; i < 10; i++ {
		page, err := engine.List(s.testCtx, req, query)
		s.Require().NoError(err)
		for _, ev := range page.Rows {
			got = append(got, TokenEventKey(ev))
		}
		if page.Next == nil {
			break
		}
		req = pagination.Request{Limit: 2, Cursor: page.Next}
	}

	s.Equal(want, got)
}
