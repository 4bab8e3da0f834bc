package events

import (
	"regexp"
	"strings"

	"github.com/goodnatureofminers/nearinsight-backend/internal/near/model"
)

type legacyPattern struct {
	prefix string
	re     *regexp.Regexp
	build  func(m []string, meta model.ReceiptMeta) ([]model.TokenEvent, error)
}

// Plain-text NEP-141 logs written by fungible token contracts that predate structured events.
var legacyPatterns = []legacyPattern{
	{
		prefix: "Transfer ",
		re:     regexp.MustCompile(`^Transfer (\d+) from (\S+) to (\S+)$`),
		build:  legacyTransfer,
	},
	{
		prefix: "Refund ",
		re:     regexp.MustCompile(`^Refund (\d+) from (\S+) to (\S+)$`),
		build:  legacyTransfer,
	},
	{
		prefix: "Account @",
		re:     regexp.MustCompile(`^Account @(\S+) burned (\d+)$`),
		build:  legacyBurn,
	},
	{
		prefix: "Closed @",
		re:     regexp.MustCompile(`^Closed @(\S+) with (\d+)$`),
		build:  legacyBurn,
	},
}

func legacyTransfer(m []string, meta model.ReceiptMeta) ([]model.TokenEvent, error) {
	amount, err := parseAmount(m[1])
	if err != nil {
		return nil, err
	}
	if err := requireAccounts(m[2], m[3]); err != nil {
		return nil, err
	}
	return transferPair(meta, model.EventTypeFT, m[2], m[3], "", amount, ""), nil
}

func legacyBurn(m []string, meta model.ReceiptMeta) ([]model.TokenEvent, error) {
	amount, err := parseAmount(m[2])
	if err != nil {
		return nil, err
	}
	if err := requireAccounts(m[1]); err != nil {
		return nil, err
	}
	return []model.TokenEvent{
		newEvent(meta, model.EventTypeFT, model.CauseBurn, m[1], "", "", amount.Neg(), ""),
	}, nil
}

// matchLegacy returns matched=false for logs that do not start with a known phrase.
// Logs that start with one but fail the full pattern are misses.
func matchLegacy(log string, meta model.ReceiptMeta) (evs []model.TokenEvent, matched, miss bool) {
	for _, p := range legacyPatterns {
		if !strings.HasPrefix(log, p.prefix) {
			continue
		}
		m := p.re.FindStringSubmatch(log)
		if m == nil {
			return nil, false, true
		}
		evs, err := p.build(m, meta)
		if err != nil {
			return nil, false, true
		}
		return evs, true, false
	}
	return nil, false, false
}
