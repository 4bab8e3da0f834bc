//go:build integration

package postgres

import (
	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
)

func (s *RepositorySuite) TestInsertBlockRecords_Idempotent() {
	records := []model.BlockRecords{
		newBlockRecords(10, "r10",
			newTransfer("r10", 10, 0, "alice.near", -50),
			newTransfer("r10", 10, 1, "bob.near", 50)),
		newBlockRecords(11, "r11",
			newTransfer("r11", 11, 0, "alice.near", -1)),
	}

	s.metrics.EXPECT().Observe("insert_block_records", gomock.Nil(), gomock.Any()).Times(2)
	s.metrics.EXPECT().Observe("get_setting", gomock.Nil(), gomock.Any())

	s.Require().NoError(s.repo.InsertBlockRecords(s.testCtx, records, model.SettingIndexerLastHeight, 11))
	s.Require().NoError(s.repo.InsertBlockRecords(s.testCtx, records, model.SettingIndexerLastHeight, 11))

	s.Equal(int64(2), s.countRows("blocks"))
	s.Equal(int64(2), s.countRows("receipts"))
	s.Equal(int64(2), s.countRows("actions"))
	s.Equal(int64(3), s.countRows("token_events"))

	height, ok, err := s.repo.Height(s.testCtx, model.SettingIndexerLastHeight)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(uint64(11), height)
}

func (s *RepositorySuite) TestSetHeight_NeverMovesBackwards() {
	s.metrics.EXPECT().Observe("set_setting", gomock.Nil(), gomock.Any()).Times(2)
	s.metrics.EXPECT().Observe("get_setting", gomock.Nil(), gomock.Any()).Times(2)

	_, ok, err := s.repo.Height(s.testCtx, model.SettingIndexerLastHeight)
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.repo.SetHeight(s.testCtx, model.SettingIndexerLastHeight, 20))
	s.Require().NoError(s.repo.SetHeight(s.testCtx, model.SettingIndexerLastHeight, 15))

	height, _, err := s.repo.Height(s.testCtx, model.SettingIndexerLastHeight)
	s.Require().NoError(err)
	s.Equal(uint64(20), height)
}
