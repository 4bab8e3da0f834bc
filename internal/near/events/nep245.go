package events

import (
	"encoding/json"
	"fmt"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/shopspring/decimal"
)

const standardNEP245 = "nep245"

type mtMintBurn struct {
	OwnerID  string   `json:"owner_id"`
	TokenIDs []string `json:"token_ids"`
	Amounts  []string `json:"amounts"`
	Memo     string   `json:"memo"`
}

type mtTransfer struct {
	OldOwnerID string   `json:"old_owner_id"`
	NewOwnerID string   `json:"new_owner_id"`
	TokenIDs   []string `json:"token_ids"`
	Amounts    []string `json:"amounts"`
	Memo       string   `json:"memo"`
}

func registerNEP245(r *Registry) {
	r.Register(standardNEP245, "mt_mint", mtMintBurnHandler(model.CauseMint))
	r.Register(standardNEP245, "mt_burn", mtMintBurnHandler(model.CauseBurn))
	r.Register(standardNEP245, "mt_transfer", mtTransferHandler)
}

func mtAmounts(tokenIDs, amounts []string) ([]decimal.Decimal, error) {
	if err := requireTokenIDs(tokenIDs); err != nil {
		return nil, err
	}
	if len(amounts) != len(tokenIDs) {
		return nil, fmt.Errorf("token ids and amounts differ in length: %w", errSkip)
	}
	out := make([]decimal.Decimal, len(amounts))
	for i, a := range amounts {
		v, err := parseAmount(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func mtMintBurnHandler(cause model.EventCause) Handler {
	return func(data json.RawMessage, meta model.ReceiptMeta) ([]model.TokenEvent, error) {
		items, err := decodeItems[mtMintBurn](data)
		if err != nil {
			return nil, err
		}

		var out []model.TokenEvent
		for _, it := range items {
			if err := requireAccounts(it.OwnerID); err != nil {
				return nil, err
			}
			amounts, err := mtAmounts(it.TokenIDs, it.Amounts)
			if err != nil {
				return nil, err
			}
			for i, tokenID := range it.TokenIDs {
				delta := amounts[i]
				if cause == model.CauseBurn {
					delta = delta.Neg()
				}
				out = append(out, newEvent(meta, model.EventTypeMT, cause, it.OwnerID, "", tokenID, delta, it.Memo))
			}
		}
		return out, nil
	}
}

func mtTransferHandler(data json.RawMessage, meta model.ReceiptMeta) ([]model.TokenEvent, error) {
	items, err := decodeItems[mtTransfer](data)
	if err != nil {
		return nil, err
	}

	var out []model.TokenEvent
	for _, it := range items {
		if err := requireAccounts(it.OldOwnerID, it.NewOwnerID); err != nil {
			return nil, err
		}
		amounts, err := mtAmounts(it.TokenIDs, it.Amounts)
		if err != nil {
			return nil, err
		}
		for i, tokenID := range it.TokenIDs {
			out = append(out, transferPair(meta, model.EventTypeMT, it.OldOwnerID, it.NewOwnerID, tokenID, amounts[i], it.Memo)...)
		}
	}
	return out, nil
}
