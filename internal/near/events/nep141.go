package events

import (
	"encoding/json"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
)

const standardNEP141 = "nep141"

type ftMintBurn struct {
	OwnerID string `json:"owner_id"`
	Amount  string `json:"amount"`
	Memo    string `json:"memo"`
}

type ftTransfer struct {
	OldOwnerID string `json:"old_owner_id"`
	NewOwnerID string `json:"new_owner_id"`
	Amount     string `json:"amount"`
	Memo       string `json:"memo"`
}

func registerNEP141(r *Registry) {
	r.Register(standardNEP141, "ft_mint", ftMintBurnHandler(model.CauseMint))
	r.Register(standardNEP141, "ft_burn", ftMintBurnHandler(model.CauseBurn))
	r.Register(standardNEP141, "ft_transfer", ftTransferHandler)
}

func ftMintBurnHandler(cause model.EventCause) Handler {
	return func(data json.RawMessage, meta model.ReceiptMeta) ([]model.TokenEvent, error) {
		items, err := decodeItems[ftMintBurn](data)
		if err != nil {
			return nil, err
		}

		out := make([]model.TokenEvent, 0, len(items))
		for _, it := range items {
			if err := requireAccounts(it.OwnerID); err != nil {
				return nil, err
			}
			amount, err := parseAmount(it.Amount)
			if err != nil {
				return nil, err
			}
			if cause == model.CauseBurn {
				amount = amount.Neg()
			}
			out = append(out, newEvent(meta, model.EventTypeFT, cause, it.OwnerID, "", "", amount, it.Memo))
		}
		return out, nil
	}
}

func ftTransferHandler(data json.RawMessage, meta model.ReceiptMeta) ([]model.TokenEvent, error) {
	items, err := decodeItems[ftTransfer](data)
	if err != nil {
		return nil, err
	}

	out := make([]model.TokenEvent, 0, len(items)*2)
	for _, it := range items {
		if err := requireAccounts(it.OldOwnerID, it.NewOwnerID); err != nil {
			return nil, err
		}
		amount, err := parseAmount(it.Amount)
		if err != nil {
			return nil, err
		}
		out = append(out, transferPair(meta, model.EventTypeFT, it.OldOwnerID, it.NewOwnerID, "", amount, it.Memo)...)
	}
	return out, nil
}
