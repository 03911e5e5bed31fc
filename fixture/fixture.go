// Package fixture runs test vectors in the evm.json format: a list of named
// programs, each with optional transaction, block and world state, and the
// expected stack, success flag, logs and return data.
package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"regexp"
	"strings"

	"github.com/entropyio/minievm/chain"
	"github.com/entropyio/minievm/common"
	"github.com/entropyio/minievm/config"
	"github.com/entropyio/minievm/evm"
	"github.com/entropyio/minievm/logger"
	"github.com/entropyio/minievm/runtime"
	"github.com/holiman/uint256"
)

var log = logger.NewLogger("[fixture]")

// Code is a program in both its assembly and binary form.
type Code struct {
	Asm string `json:"asm"`
	Bin string `json:"bin"`
}

// Tx holds the transaction fields of a test. All values are hex.
type Tx struct {
	To       string `json:"to"`
	From     string `json:"from"`
	Origin   string `json:"origin"`
	GasPrice string `json:"gasprice"`
	Value    string `json:"value"`
	Data     string `json:"data"`
}

// Block holds the block fields of a test. All values are hex.
type Block struct {
	BaseFee    string `json:"basefee"`
	Coinbase   string `json:"coinbase"`
	Timestamp  string `json:"timestamp"`
	Number     string `json:"number"`
	Difficulty string `json:"difficulty"`
	GasLimit   string `json:"gaslimit"`
	ChainID    string `json:"chainid"`
}

// Account is the state of one address before execution.
type Account struct {
	Balance string            `json:"balance"`
	Code    Code              `json:"code"`
	Storage map[string]string `json:"storage"`
}

// Log is an expected log entry.
type Log struct {
	Address string   `json:"address"`
	Data    string   `json:"data"`
	Topics  []string `json:"topics"`
}

// Expect is the outcome a test asserts. Logs and Return are only checked
// when present.
type Expect struct {
	Stack   []string `json:"stack"`
	Success bool     `json:"success"`
	Logs    []Log    `json:"logs"`
	Return  *string  `json:"return"`
}

// Test is a single test vector.
type Test struct {
	Name   string             `json:"name"`
	Hint   string             `json:"hint"`
	Code   Code               `json:"code"`
	Tx     *Tx                `json:"tx"`
	Block  *Block             `json:"block"`
	State  map[string]Account `json:"state"`
	Expect Expect             `json:"expect"`
}

// Mismatch is returned by Run when the execution differs from the
// expectation.
type Mismatch struct {
	Field    string // stack, success, logs or return
	Expected string
	Actual   string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("%s doesn't match\n expected: %s\n   actual: %s", m.Field, m.Expected, m.Actual)
}

// Load decodes a list of tests.
func Load(r io.Reader) ([]Test, error) {
	var tests []Test
	if err := json.NewDecoder(r).Decode(&tests); err != nil {
		return nil, fmt.Errorf("decode tests: %w", err)
	}
	return tests, nil
}

// LoadFile decodes the tests stored in file.
func LoadFile(file string) ([]Test, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tests, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	log.Infof("loaded %d tests from %s", len(tests), file)
	return tests, nil
}

// Filter returns the tests whose name matches re.
func Filter(tests []Test, re *regexp.Regexp) []Test {
	var out []Test
	for _, t := range tests {
		if re.MatchString(t.Name) {
			out = append(out, t)
		}
	}
	return out
}

// Config builds the runtime configuration and the calldata of the test.
func (t *Test) Config() (*runtime.Config, []byte, error) {
	var (
		cfg   = &runtime.Config{ChainConfig: &config.ChainConfig{ChainID: new(big.Int), BaseFee: new(big.Int)}}
		input []byte
		err   error
	)
	if tx := t.Tx; tx != nil {
		cfg.Address = common.HexToAddress(tx.To)
		cfg.Caller = common.HexToAddress(tx.From)
		cfg.Origin = common.HexToAddress(tx.Origin)
		if cfg.GasPrice, err = parseBig("tx.gasprice", tx.GasPrice); err != nil {
			return nil, nil, err
		}
		if cfg.Value, err = parseBig("tx.value", tx.Value); err != nil {
			return nil, nil, err
		}
		if input, err = common.DecodeHex(tx.Data); err != nil {
			return nil, nil, fmt.Errorf("tx.data: %w", err)
		}
	}
	if b := t.Block; b != nil {
		cfg.Coinbase = common.HexToAddress(b.Coinbase)
		fields := []struct {
			name string
			val  string
			dst  **big.Int
		}{
			{"block.basefee", b.BaseFee, &cfg.BaseFee},
			{"block.timestamp", b.Timestamp, &cfg.Time},
			{"block.number", b.Number, &cfg.BlockNumber},
			{"block.difficulty", b.Difficulty, &cfg.Difficulty},
			{"block.chainid", b.ChainID, &cfg.ChainConfig.ChainID},
		}
		for _, f := range fields {
			v, err := parseBig(f.name, f.val)
			if err != nil {
				return nil, nil, err
			}
			if v != nil {
				*f.dst = v
			}
		}
		gasLimit, err := parseBig("block.gaslimit", b.GasLimit)
		if err != nil {
			return nil, nil, err
		}
		if gasLimit != nil {
			if !gasLimit.IsUint64() {
				return nil, nil, fmt.Errorf("block.gaslimit: %v does not fit 64 bits", gasLimit)
			}
			cfg.GasLimit = gasLimit.Uint64()
		}
	}
	if cfg.BaseFee == nil {
		cfg.BaseFee = new(big.Int)
	}
	state, err := t.buildState()
	if err != nil {
		return nil, nil, err
	}
	cfg.State = state
	return cfg, input, nil
}

func (t *Test) buildState() (*chain.State, error) {
	state := chain.NewState()
	for hexAddr, acct := range t.State {
		addr := common.HexToAddress(hexAddr)
		balance, err := parseWord("state.balance", acct.Balance)
		if err != nil {
			return nil, err
		}
		state.SetBalance(addr, balance)

		code, err := common.DecodeHex(acct.Code.Bin)
		if err != nil {
			return nil, fmt.Errorf("state %s code: %w", hexAddr, err)
		}
		state.SetCode(addr, code)

		for k, v := range acct.Storage {
			state.SetState(addr, common.HexToHash(k), common.HexToHash(v))
		}
	}
	return state, nil
}

// Run executes the test. It returns a *Mismatch when the outcome differs
// from the expectation, and any other error when the test is malformed.
func (t *Test) Run() (*evm.ExecutionResult, error) {
	code, err := common.DecodeHex(t.Code.Bin)
	if err != nil {
		return nil, fmt.Errorf("code: %w", err)
	}
	cfg, input, err := t.Config()
	if err != nil {
		return nil, err
	}
	res := runtime.Execute(code, input, cfg)
	return res, t.Check(res)
}

// Check compares res against the expectation of the test.
func (t *Test) Check(res *evm.ExecutionResult) error {
	expected := make([]uint256.Int, len(t.Expect.Stack))
	for i, s := range t.Expect.Stack {
		w, err := parseWord("expect.stack", s)
		if err != nil {
			return err
		}
		expected[i] = *w
	}
	if !stackEqual(expected, res.Stack) {
		return &Mismatch{Field: "stack", Expected: formatStack(expected), Actual: formatStack(res.Stack)}
	}
	if res.Success != t.Expect.Success {
		return &Mismatch{
			Field:    "success",
			Expected: fmt.Sprint(t.Expect.Success),
			Actual:   fmt.Sprintf("%v (%v)", res.Success, res.Err),
		}
	}
	if t.Expect.Logs != nil {
		if err := t.checkLogs(res.Logs); err != nil {
			return err
		}
	}
	if t.Expect.Return != nil {
		want, err := common.DecodeHex(*t.Expect.Return)
		if err != nil {
			return fmt.Errorf("expect.return: %w", err)
		}
		if !bytes.Equal(want, res.ReturnData) {
			return &Mismatch{Field: "return", Expected: fmt.Sprintf("%x", want), Actual: fmt.Sprintf("%x", res.ReturnData)}
		}
	}
	return nil
}

func (t *Test) checkLogs(logs []*evm.Log) error {
	want := make([]*evm.Log, len(t.Expect.Logs))
	for i, l := range t.Expect.Logs {
		data, err := common.DecodeHex(l.Data)
		if err != nil {
			return fmt.Errorf("expect.logs data: %w", err)
		}
		topics := make([]common.Hash, len(l.Topics))
		for j, topic := range l.Topics {
			topics[j] = common.HexToHash(topic)
		}
		want[i] = &evm.Log{Address: common.HexToAddress(l.Address), Topics: topics, Data: data}
	}
	if !logsEqual(want, logs) {
		return &Mismatch{Field: "logs", Expected: fmt.Sprint(want), Actual: fmt.Sprint(logs)}
	}
	return nil
}

func logsEqual(a, b []*evm.Log) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Address != b[i].Address || !bytes.Equal(a[i].Data, b[i].Data) || len(a[i].Topics) != len(b[i].Topics) {
			return false
		}
		for j := range a[i].Topics {
			if a[i].Topics[j] != b[i].Topics[j] {
				return false
			}
		}
	}
	return true
}

func stackEqual(a, b []uint256.Int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Eq(&b[i]) {
			return false
		}
	}
	return true
}

func formatStack(stack []uint256.Int) string {
	items := make([]string, len(stack))
	for i := range stack {
		items[i] = stack[i].Hex()
	}
	return "[" + strings.Join(items, ", ") + "]"
}

// parseBig parses a hex quantity. The empty string yields nil.
func parseBig(field, s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	digits := s
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}
	v, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, fmt.Errorf("%s: invalid hex quantity %q", field, s)
	}
	return v, nil
}

// parseWord is parseBig for values that must fit a word. The empty string
// yields zero.
func parseWord(field, s string) (*uint256.Int, error) {
	v, err := parseBig(field, s)
	if err != nil || v == nil {
		return new(uint256.Int), err
	}
	w, overflow := uint256.FromBig(v)
	if overflow {
		return nil, fmt.Errorf("%s: %s does not fit 256 bits", field, s)
	}
	return w, nil
}
