package events

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
)

// DefaultSignerContract is the mainnet chain-signatures contract.
const DefaultSignerContract = "v1.signer"

const epsilonDerivationPrefix = "near-mpc-recovery v0.1.0 epsilon derivation:"

type signArgs struct {
	Request *signRequest `json:"request"`
	signRequest
}

type signRequest struct {
	Payload    json.RawMessage `json:"payload"`
	PayloadV2  json.RawMessage `json:"payload_v2"`
	Path       string          `json:"path"`
	KeyVersion *uint32         `json:"key_version"`
	DomainID   *uint32         `json:"domain_id"`
}

type scalar struct {
	Scalar string `json:"scalar"`
}

type respondArgs struct {
	Request struct {
		Epsilon     *scalar         `json:"epsilon"`
		Tweak       string          `json:"tweak"`
		PayloadHash *scalar         `json:"payload_hash"`
		Payload     json.RawMessage `json:"payload"`
	} `json:"request"`
	Response json.RawMessage `json:"response"`
}

type ecdsaResponse struct {
	BigR struct {
		AffinePoint string `json:"affine_point"`
	} `json:"big_r"`
	S          scalar `json:"s"`
	RecoveryID int    `json:"recovery_id"`
}

// RequestKey pairs a sign call with its respond call: the derivation tweak and the payload, both hex.
func RequestKey(requester, path, payloadHex string) string {
	sum := sha256.Sum256([]byte(epsilonDerivationPrefix + requester + "," + path))
	return hex.EncodeToString(sum[:]) + ":" + normalizeHex(payloadHex)
}

func (e *Extractor) extractChainSignatures(meta model.ReceiptMeta) Result {
	var res Result
	if e.signerContract == "" || meta.ReceiverID != e.signerContract {
		return res
	}

	for _, a := range meta.Actions {
		fc, ok := a.Action.(model.FunctionCall)
		if !ok {
			continue
		}
		switch fc.MethodName {
		case "sign":
			req, ok := parseSignRequest(fc, meta)
			if !ok {
				e.metrics.ObserveSkip(strategyChainSig, reasonInvalid)
				continue
			}
			res.SignatureRequests = append(res.SignatureRequests, req)
		case "respond":
			resp, ok := parseSignResponse(fc, meta)
			if !ok {
				e.metrics.ObserveSkip(strategyChainSig, reasonInvalid)
				continue
			}
			res.SignatureResponses = append(res.SignatureResponses, resp)
		}
	}
	return res
}

func parseSignRequest(fc model.FunctionCall, meta model.ReceiptMeta) (model.SignatureRequest, bool) {
	if len(fc.ArgsJSON) == 0 {
		return model.SignatureRequest{}, false
	}
	var args signArgs
	if err := json.Unmarshal(fc.ArgsJSON, &args); err != nil {
		return model.SignatureRequest{}, false
	}
	req := args.signRequest
	if args.Request != nil {
		req = *args.Request
	}

	payload := payloadHex(req.Payload)
	if payload == "" {
		payload = payloadHex(req.PayloadV2)
	}
	if payload == "" {
		return model.SignatureRequest{}, false
	}

	var version uint32
	switch {
	case req.KeyVersion != nil:
		version = *req.KeyVersion
	case req.DomainID != nil:
		version = *req.DomainID
	}

	return model.SignatureRequest{
		ReceiptID:      meta.ReceiptID,
		BlockHeight:    meta.BlockHeight,
		BlockTimestamp: meta.BlockTimestamp,
		ShardID:        meta.ShardID,
		ContractID:     meta.ReceiverID,
		RequesterID:    meta.PredecessorID,
		Payload:        payload,
		Path:           req.Path,
		KeyVersion:     version,
		Deposit:        fc.Deposit,
		RequestKey:     RequestKey(meta.PredecessorID, req.Path, payload),
	}, true
}

func parseSignResponse(fc model.FunctionCall, meta model.ReceiptMeta) (model.SignatureResponse, bool) {
	if len(fc.ArgsJSON) == 0 {
		return model.SignatureResponse{}, false
	}
	var args respondArgs
	if err := json.Unmarshal(fc.ArgsJSON, &args); err != nil {
		return model.SignatureResponse{}, false
	}

	tweak := args.Request.Tweak
	if args.Request.Epsilon != nil {
		tweak = args.Request.Epsilon.Scalar
	}
	payload := payloadHex(args.Request.Payload)
	if args.Request.PayloadHash != nil {
		payload = normalizeHex(args.Request.PayloadHash.Scalar)
	}
	if tweak == "" || payload == "" {
		return model.SignatureResponse{}, false
	}

	sig, ok := parseECDSAResponse(args.Response)
	if !ok {
		return model.SignatureResponse{}, false
	}

	return model.SignatureResponse{
		ReceiptID:      meta.ReceiptID,
		BlockHeight:    meta.BlockHeight,
		BlockTimestamp: meta.BlockTimestamp,
		ShardID:        meta.ShardID,
		ContractID:     meta.ReceiverID,
		ResponderID:    meta.PredecessorID,
		RequestKey:     normalizeHex(tweak) + ":" + payload,
		BigR:           sig.BigR.AffinePoint,
		S:              sig.S.Scalar,
		RecoveryID:     sig.RecoveryID,
	}, true
}

func parseECDSAResponse(raw json.RawMessage) (ecdsaResponse, bool) {
	if len(raw) == 0 {
		return ecdsaResponse{}, false
	}
	var wrapped struct {
		Secp256k1 *ecdsaResponse `json:"Secp256k1"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Secp256k1 != nil {
		return *wrapped.Secp256k1, wrapped.Secp256k1.S.Scalar != ""
	}
	var direct ecdsaResponse
	if err := json.Unmarshal(raw, &direct); err != nil {
		return ecdsaResponse{}, false
	}
	return direct, direct.S.Scalar != ""
}

// payloadHex accepts a byte array, a hex string, or a {"Ecdsa"|"Eddsa": hex} wrapper.
func payloadHex(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var bytesPayload []byte
	var ints []int
	if err := json.Unmarshal(raw, &ints); err == nil {
		bytesPayload = make([]byte, 0, len(ints))
		for _, v := range ints {
			if v < 0 || v > 255 {
				return ""
			}
			bytesPayload = append(bytesPayload, byte(v))
		}
		return hex.EncodeToString(bytesPayload)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return normalizeHex(s)
	}

	var wrapped map[string]string
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		for _, k := range []string{"Ecdsa", "Eddsa"} {
			if v, ok := wrapped[k]; ok {
				return normalizeHex(v)
			}
		}
	}
	return ""
}

func normalizeHex(s string) string {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	if _, err := hex.DecodeString(s); err != nil {
		return ""
	}
	return s
}
