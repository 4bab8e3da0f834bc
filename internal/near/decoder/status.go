package decoder

import (
	"encoding/json"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
)

// DecodeExecutionStatus maps the outcome status union onto the closed status enum.
// Unrecognized shapes are StatusUnknown.
func DecodeExecutionStatus(raw json.RawMessage) model.ExecutionStatus {
	if len(raw) == 0 {
		return model.StatusUnknown
	}

	var tag string
	if err := json.Unmarshal(raw, &tag); err == nil {
		return statusFromTag(tag)
	}

	var variant map[string]json.RawMessage
	if err := json.Unmarshal(raw, &variant); err != nil || len(variant) != 1 {
		return model.StatusUnknown
	}
	for tag := range variant {
		return statusFromTag(tag)
	}
	return model.StatusUnknown
}

func statusFromTag(tag string) model.ExecutionStatus {
	switch tag {
	case "SuccessValue":
		return model.StatusSuccessValue
	case "SuccessReceiptId":
		return model.StatusSuccessReceiptID
	case "Failure":
		return model.StatusFailure
	default:
		return model.StatusUnknown
	}
}
