package events

import (
	"encoding/json"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/shopspring/decimal"
)

const standardNEP171 = "nep171"

type nftMintBurn struct {
	OwnerID  string   `json:"owner_id"`
	TokenIDs []string `json:"token_ids"`
	Memo     string   `json:"memo"`
}

type nftTransfer struct {
	OldOwnerID string   `json:"old_owner_id"`
	NewOwnerID string   `json:"new_owner_id"`
	TokenIDs   []string `json:"token_ids"`
	Memo       string   `json:"memo"`
}

var one = decimal.NewFromInt(1)

func registerNEP171(r *Registry) {
	r.Register(standardNEP171, "nft_mint", nftMintBurnHandler(model.CauseMint))
	r.Register(standardNEP171, "nft_burn", nftMintBurnHandler(model.CauseBurn))
	r.Register(standardNEP171, "nft_transfer", nftTransferHandler)
}

func nftMintBurnHandler(cause model.EventCause) Handler {
	delta := one
	if cause == model.CauseBurn {
		delta = one.Neg()
	}
	return func(data json.RawMessage, meta model.ReceiptMeta) ([]model.TokenEvent, error) {
		items, err := decodeItems[nftMintBurn](data)
		if err != nil {
			return nil, err
		}

		var out []model.TokenEvent
		for _, it := range items {
			if err := requireAccounts(it.OwnerID); err != nil {
				return nil, err
			}
			if err := requireTokenIDs(it.TokenIDs); err != nil {
				return nil, err
			}
			for _, tokenID := range it.TokenIDs {
				out = append(out, newEvent(meta, model.EventTypeNFT, cause, it.OwnerID, "", tokenID, delta, it.Memo))
			}
		}
		return out, nil
	}
}

func nftTransferHandler(data json.RawMessage, meta model.ReceiptMeta) ([]model.TokenEvent, error) {
	items, err := decodeItems[nftTransfer](data)
	if err != nil {
		return nil, err
	}

	var out []model.TokenEvent
	for _, it := range items {
		if err := requireAccounts(it.OldOwnerID, it.NewOwnerID); err != nil {
			return nil, err
		}
		if err := requireTokenIDs(it.TokenIDs); err != nil {
			return nil, err
		}
		for _, tokenID := range it.TokenIDs {
			out = append(out, transferPair(meta, model.EventTypeNFT, it.OldOwnerID, it.NewOwnerID, tokenID, one, it.Memo)...)
		}
	}
	return out, nil
}
