package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type ActionKind string

const (
	ActionCreateAccount  ActionKind = "CREATE_ACCOUNT"
	ActionDeployContract ActionKind = "DEPLOY_CONTRACT"
	ActionFunctionCall   ActionKind = "FUNCTION_CALL"
	ActionTransfer       ActionKind = "TRANSFER"
	ActionStake          ActionKind = "STAKE"
	ActionAddKey         ActionKind = "ADD_KEY"
	ActionDeleteKey      ActionKind = "DELETE_KEY"
	ActionDeleteAccount  ActionKind = "DELETE_ACCOUNT"
	ActionDelegate       ActionKind = "DELEGATE_ACTION"
	ActionUnknown        ActionKind = "UNKNOWN"
)

// Action is the closed set of decoded receipt actions. Only types in this package implement it.
type Action interface {
	Kind() ActionKind
	action()
}

type CreateAccount struct{}

type DeployContract struct {
	CodeSize   int    `json:"code_size"`
	CodeSHA256 string `json:"code_sha256"`
	CodeHash   string `json:"code_hash"`
}

type FunctionCall struct {
	MethodName string          `json:"method_name"`
	ArgsJSON   json.RawMessage `json:"args_json,omitempty"`
	ArgsBase64 string          `json:"args_base64,omitempty"`
	Gas        uint64          `json:"gas"`
	Deposit    decimal.Decimal `json:"deposit"`
	// RawArgs are the decoded argument bytes; not persisted.
	RawArgs []byte `json:"-"`
}

type Transfer struct {
	Deposit decimal.Decimal `json:"deposit"`
}

type Stake struct {
	Stake     decimal.Decimal `json:"stake"`
	PublicKey string          `json:"public_key"`
}

type AccessKey struct {
	Nonce       uint64           `json:"nonce"`
	FullAccess  bool             `json:"full_access"`
	Allowance   *decimal.Decimal `json:"allowance,omitempty"`
	ReceiverID  string           `json:"receiver_id,omitempty"`
	MethodNames []string         `json:"method_names,omitempty"`
}

type AddKey struct {
	PublicKey string    `json:"public_key"`
	AccessKey AccessKey `json:"access_key"`
}

type DeleteKey struct {
	PublicKey string `json:"public_key"`
}

type DeleteAccount struct {
	BeneficiaryID string `json:"beneficiary_id"`
}

type Delegate struct {
	SenderID       string   `json:"sender_id"`
	ReceiverID     string   `json:"receiver_id"`
	Nonce          uint64   `json:"nonce"`
	MaxBlockHeight uint64   `json:"max_block_height"`
	PublicKey      string   `json:"public_key"`
	Signature      string   `json:"signature"`
	Actions        []Action `json:"actions"`
}

// Unknown keeps the raw wire value of an action that did not match any known variant.
type Unknown struct {
	Raw json.RawMessage `json:"raw,omitempty"`
}

func (CreateAccount) Kind() ActionKind  { return ActionCreateAccount }
func (DeployContract) Kind() ActionKind { return ActionDeployContract }
func (FunctionCall) Kind() ActionKind   { return ActionFunctionCall }
func (Transfer) Kind() ActionKind       { return ActionTransfer }
func (Stake) Kind() ActionKind          { return ActionStake }
func (AddKey) Kind() ActionKind         { return ActionAddKey }
func (DeleteKey) Kind() ActionKind      { return ActionDeleteKey }
func (DeleteAccount) Kind() ActionKind  { return ActionDeleteAccount }
func (Delegate) Kind() ActionKind       { return ActionDelegate }
func (Unknown) Kind() ActionKind        { return ActionUnknown }

func (CreateAccount) action()  {}
func (DeployContract) action() {}
func (FunctionCall) action()   {}
func (Transfer) action()       {}
func (Stake) action()          {}
func (AddKey) action()         {}
func (DeleteKey) action()      {}
func (DeleteAccount) action()  {}
func (Delegate) action()       {}
func (Unknown) action()        {}

// DecodedAction is the storage projection of one action.
type DecodedAction struct {
	Action      Action
	Kind        ActionKind
	Args        json.RawMessage
	DerivedHash *string
}

type ExecutionStatus string

const (
	StatusSuccessValue     ExecutionStatus = "SUCCESS_VALUE"
	StatusSuccessReceiptID ExecutionStatus = "SUCCESS_RECEIPT_ID"
	StatusFailure          ExecutionStatus = "FAILURE"
	StatusUnknown          ExecutionStatus = "UNKNOWN"
)

func (s ExecutionStatus) Successful() bool {
	return s == StatusSuccessValue || s == StatusSuccessReceiptID
}
