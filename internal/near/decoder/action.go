package decoder

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strconv"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
	"github.com/shopspring/decimal"
)

type wireFunctionCall struct {
	MethodName string      `json:"method_name"`
	Args       string      `json:"args"`
	Gas        json.Number `json:"gas"`
	Deposit    string      `json:"deposit"`
}

type wireAccessKey struct {
	Nonce      json.Number     `json:"nonce"`
	Permission json.RawMessage `json:"permission"`
}

type wireFunctionCallPermission struct {
	Allowance   *string  `json:"allowance"`
	ReceiverID  string   `json:"receiver_id"`
	MethodNames []string `json:"method_names"`
}

type wireDelegate struct {
	DelegateAction struct {
		SenderID       string            `json:"sender_id"`
		ReceiverID     string            `json:"receiver_id"`
		Actions        []json.RawMessage `json:"actions"`
		Nonce          json.Number       `json:"nonce"`
		MaxBlockHeight json.Number       `json:"max_block_height"`
		PublicKey      string            `json:"public_key"`
	} `json:"delegate_action"`
	Signature string `json:"signature"`
}

// DecodeAction maps one wire action into its typed form, the JSON stored alongside it, and,
// for relay calls, the hash of the embedded Ethereum transaction.
func (d *Decoder) DecodeAction(raw json.RawMessage) model.DecodedAction {
	action := d.decodeVariant(raw, 0)

	out := model.DecodedAction{
		Action: action,
		Kind:   action.Kind(),
		Args:   actionArgs(action),
	}
	if fc, ok := action.(model.FunctionCall); ok && d.isRelay(fc.MethodName) {
		out.DerivedHash = relayTxHash(fc.RawArgs)
	}
	return out
}

func actionArgs(action model.Action) json.RawMessage {
	args, err := json.Marshal(action)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return args
}

func (d *Decoder) decodeVariant(raw json.RawMessage, depth int) model.Action {
	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return model.Unknown{}
	}

	var tag string
	if err := json.Unmarshal(raw, &tag); err == nil {
		if tag == "CreateAccount" {
			return model.CreateAccount{}
		}
		return model.Unknown{Raw: raw}
	}

	var variant map[string]json.RawMessage
	if err := json.Unmarshal(raw, &variant); err != nil || len(variant) != 1 {
		return model.Unknown{Raw: raw}
	}

	for name, body := range variant {
		switch name {
		case "CreateAccount":
			return model.CreateAccount{}
		case "DeployContract":
			return decodeDeployContract(raw, body)
		case "FunctionCall":
			return decodeFunctionCall(raw, body)
		case "Transfer":
			var v struct {
				Deposit string `json:"deposit"`
			}
			if err := json.Unmarshal(body, &v); err != nil {
				return model.Unknown{Raw: raw}
			}
			return model.Transfer{Deposit: parseAmount(v.Deposit)}
		case "Stake":
			var v struct {
				Stake     string `json:"stake"`
				PublicKey string `json:"public_key"`
			}
			if err := json.Unmarshal(body, &v); err != nil {
				return model.Unknown{Raw: raw}
			}
			return model.Stake{Stake: parseAmount(v.Stake), PublicKey: v.PublicKey}
		case "AddKey":
			return decodeAddKey(raw, body)
		case "DeleteKey":
			var v struct {
				PublicKey string `json:"public_key"`
			}
			if err := json.Unmarshal(body, &v); err != nil {
				return model.Unknown{Raw: raw}
			}
			return model.DeleteKey{PublicKey: v.PublicKey}
		case "DeleteAccount":
			var v struct {
				BeneficiaryID string `json:"beneficiary_id"`
			}
			if err := json.Unmarshal(body, &v); err != nil {
				return model.Unknown{Raw: raw}
			}
			return model.DeleteAccount{BeneficiaryID: v.BeneficiaryID}
		case "Delegate":
			if depth >= maxDelegateDepth {
				return model.Unknown{Raw: raw}
			}
			return d.decodeDelegate(raw, body, depth)
		}
	}
	return model.Unknown{Raw: raw}
}

func decodeDeployContract(raw, body json.RawMessage) model.Action {
	var v struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return model.Unknown{Raw: raw}
	}
	code, err := base64.StdEncoding.DecodeString(v.Code)
	if err != nil {
		return model.DeployContract{}
	}
	sum := sha256.Sum256(code)
	return model.DeployContract{
		CodeSize:   len(code),
		CodeSHA256: hex.EncodeToString(sum[:]),
		CodeHash:   base58.Encode(sum[:]),
	}
}

func decodeFunctionCall(raw, body json.RawMessage) model.Action {
	var v wireFunctionCall
	if err := json.Unmarshal(body, &v); err != nil {
		return model.Unknown{Raw: raw}
	}

	fc := model.FunctionCall{
		MethodName: v.MethodName,
		Gas:        parseUint(v.Gas),
		Deposit:    parseAmount(v.Deposit),
	}

	decoded, err := base64.StdEncoding.DecodeString(v.Args)
	if err != nil {
		fc.ArgsBase64 = v.Args
		return fc
	}
	fc.RawArgs = decoded
	if len(decoded) > 0 && json.Valid(decoded) {
		var compact bytes.Buffer
		if err := json.Compact(&compact, decoded); err == nil {
			fc.ArgsJSON = compact.Bytes()
			return fc
		}
	}
	fc.ArgsBase64 = v.Args
	return fc
}

func decodeAddKey(raw, body json.RawMessage) model.Action {
	var v struct {
		PublicKey string        `json:"public_key"`
		AccessKey wireAccessKey `json:"access_key"`
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return model.Unknown{Raw: raw}
	}

	key := model.AccessKey{Nonce: parseUint(v.AccessKey.Nonce)}
	var fullAccess string
	if err := json.Unmarshal(v.AccessKey.Permission, &fullAccess); err == nil {
		key.FullAccess = fullAccess == "FullAccess"
		return model.AddKey{PublicKey: v.PublicKey, AccessKey: key}
	}

	var perm struct {
		FunctionCall *wireFunctionCallPermission `json:"FunctionCall"`
	}
	if err := json.Unmarshal(v.AccessKey.Permission, &perm); err == nil && perm.FunctionCall != nil {
		key.ReceiverID = perm.FunctionCall.ReceiverID
		key.MethodNames = perm.FunctionCall.MethodNames
		if perm.FunctionCall.Allowance != nil {
			allowance := parseAmount(*perm.FunctionCall.Allowance)
			key.Allowance = &allowance
		}
	}
	return model.AddKey{PublicKey: v.PublicKey, AccessKey: key}
}

func (d *Decoder) decodeDelegate(raw, body json.RawMessage, depth int) model.Action {
	var v wireDelegate
	if err := json.Unmarshal(body, &v); err != nil {
		return model.Unknown{Raw: raw}
	}

	da := v.DelegateAction
	actions := make([]model.Action, 0, len(da.Actions))
	for _, inner := range da.Actions {
		actions = append(actions, d.decodeVariant(inner, depth+1))
	}
	return model.Delegate{
		SenderID:       da.SenderID,
		ReceiverID:     da.ReceiverID,
		Nonce:          parseUint(da.Nonce),
		MaxBlockHeight: parseUint(da.MaxBlockHeight),
		PublicKey:      da.PublicKey,
		Signature:      v.Signature,
		Actions:        actions,
	}
}

func parseUint(n json.Number) uint64 {
	if n == "" {
		return 0
	}
	v, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		d, derr := decimal.NewFromString(n.String())
		if derr != nil || d.IsNegative() {
			return 0
		}
		return d.BigInt().Uint64()
	}
	return v
}
