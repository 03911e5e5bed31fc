package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/entropyio/minievm/common"
	"github.com/entropyio/minievm/evm"
	"github.com/entropyio/minievm/fixture"
	"github.com/entropyio/minievm/runtime"
	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"
)

var (
	codeFlag = &cli.StringFlag{
		Name:  "code",
		Usage: "hex encoded bytecode to execute",
	}
	asmFlag = &cli.StringFlag{
		Name:  "asm",
		Usage: "assembly to execute instead of --code, e.g. \"PUSH1 0x05 PUSH1 0x0a ADD\"",
	}
	inputFlag = &cli.StringFlag{
		Name:  "input",
		Usage: "hex encoded calldata, overrides Tx.Data of the env file",
	}
	envFlag = &cli.StringFlag{
		Name:  "env",
		Usage: "TOML file with the Tx, Block and State of the execution",
	}
	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "print the result as JSON",
	}
	storageFlag = &cli.BoolFlag{
		Name:  "storage.fromstate",
		Usage: "let SLOAD of unwritten keys read the account storage of the env file",
	}

	runCommand = &cli.Command{
		Name:      "run",
		Usage:     "Execute bytecode",
		ArgsUsage: "",
		Action:    runCmd,
		Flags:     []cli.Flag{codeFlag, asmFlag, inputFlag, envFlag, jsonFlag, storageFlag},
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// envConfig is the content of an env file, e.g.
//
//	[Tx]
//	To = "0x1000000000000000000000000000000000000aaa"
//	Data = "c6888fa1"
//
//	[Block]
//	Number = "0x10"
//
//	[State."0x1000000000000000000000000000000000000bbb"]
//	Balance = "0x100"
type envConfig struct {
	Tx    fixture.Tx
	Block fixture.Block
	State map[string]fixture.Account
}

func loadEnv(file string, cfg *envConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

func runCmd(ctx *cli.Context) error {
	code, err := loadCode(ctx)
	if err != nil {
		return err
	}
	var env envConfig
	if file := ctx.String(envFlag.Name); file != "" {
		if err := loadEnv(file, &env); err != nil {
			return err
		}
	}
	test := fixture.Test{Tx: &env.Tx, Block: &env.Block, State: env.State}
	cfg, input, err := test.Config()
	if err != nil {
		return err
	}
	if ctx.IsSet(inputFlag.Name) {
		if input, err = common.DecodeHex(ctx.String(inputFlag.Name)); err != nil {
			return fmt.Errorf("invalid --%s: %w", inputFlag.Name, err)
		}
	}
	cfg.EVMConfig.StorageFromState = ctx.Bool(storageFlag.Name)

	res := runtime.Execute(code, input, cfg)
	if ctx.Bool(jsonFlag.Name) {
		return printJSON(ctx.App.Writer, res)
	}
	printResult(ctx.App.Writer, res)
	if res.Failed() {
		return cli.Exit("", 1)
	}
	return nil
}

func loadCode(ctx *cli.Context) ([]byte, error) {
	switch {
	case ctx.IsSet(codeFlag.Name) && ctx.IsSet(asmFlag.Name):
		return nil, fmt.Errorf("--%s and --%s are mutually exclusive", codeFlag.Name, asmFlag.Name)
	case ctx.IsSet(asmFlag.Name):
		return evm.Assemble(ctx.String(asmFlag.Name))
	case ctx.IsSet(codeFlag.Name):
		code, err := common.DecodeHex(ctx.String(codeFlag.Name))
		if err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", codeFlag.Name, err)
		}
		return code, nil
	}
	return nil, fmt.Errorf("one of --%s or --%s is required", codeFlag.Name, asmFlag.Name)
}

type logJSON struct {
	Address common.Address `json:"address"`
	Topics  []string       `json:"topics"`
	Data    string         `json:"data"`
}

type resultJSON struct {
	Success bool              `json:"success"`
	Stack   []string          `json:"stack"`
	Logs    []logJSON         `json:"logs"`
	Storage map[string]string `json:"storage,omitempty"`
	Return  string            `json:"return"`
	Error   string            `json:"error,omitempty"`
}

func printJSON(w io.Writer, res *evm.ExecutionResult) error {
	out := resultJSON{
		Success: res.Success,
		Stack:   make([]string, len(res.Stack)),
		Logs:    make([]logJSON, len(res.Logs)),
		Return:  common.Bytes2Hex(res.ReturnData),
	}
	for i := range res.Stack {
		out.Stack[i] = res.Stack[i].Hex()
	}
	for i, l := range res.Logs {
		topics := make([]string, len(l.Topics))
		for j, t := range l.Topics {
			topics[j] = t.Hex()
		}
		out.Logs[i] = logJSON{Address: l.Address, Topics: topics, Data: common.Bytes2Hex(l.Data)}
	}
	if len(res.Storage) > 0 {
		out.Storage = make(map[string]string, len(res.Storage))
		for k, v := range res.Storage {
			out.Storage[k.Hex()] = v.Hex()
		}
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printResult(w io.Writer, res *evm.ExecutionResult) {
	fmt.Fprintf(w, "success: %v\n", res.Success)
	if res.Err != nil {
		fmt.Fprintf(w, "error:   %v\n", res.Err)
	}
	fmt.Fprintln(w, "stack:")
	for i := range res.Stack {
		fmt.Fprintf(w, "  %s\n", res.Stack[i].Hex())
	}
	for _, l := range res.Logs {
		fmt.Fprintf(w, "%v\n", l)
	}
	if len(res.Storage) > 0 {
		fmt.Fprintln(w, "storage:")
		for k, v := range res.Storage {
			fmt.Fprintf(w, "  %s: %s\n", k.Hex(), v.Hex())
		}
	}
	if len(res.ReturnData) > 0 {
		fmt.Fprintf(w, "return:  %x\n", res.ReturnData)
	}
}
