package decoder

import (
	"github.com/ethereum/go-ethereum/core/types"
)

// relayTxHash decodes args as a signed Ethereum transaction (legacy RLP or typed envelope)
// and returns its canonical hash. Anything that does not decode yields nil.
func relayTxHash(args []byte) *string {
	if len(args) == 0 {
		return nil
	}

	var tx types.Transaction
	if err := tx.UnmarshalBinary(args); err != nil {
		return nil
	}
	hash := tx.Hash().Hex()
	return &hash
}
