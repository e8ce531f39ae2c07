package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dhkang/bondmath/bond"
)

type calcInput struct {
	TaskID          string  `json:"task_id,omitempty"`
	Name            string  `json:"name,omitempty"`
	Issuer          string  `json:"issuer,omitempty"`
	BondType        string  `json:"bond_type"`
	Currency        string  `json:"currency"`
	FaceValue       float64 `json:"face_value"`
	CouponRate      float64 `json:"coupon_rate"`
	CouponFrequency int     `json:"coupon_frequency"`
	IssueDate       string  `json:"issue_date"`
	MaturityDate    string  `json:"maturity_date"`
	SettlementDate  string  `json:"settlement_date"`
	// Input selects the direction: "price" solves for yield, "yield"
	// prices the bond.
	Input      string  `json:"input"`
	Value      float64 `json:"value"`
	IncludeTax bool    `json:"include_tax,omitempty"`
	TaxRatePct float64 `json:"tax_rate_pct,omitempty"`
}

type calcOutput struct {
	TaskID string         `json:"task_id,omitempty"`
	Result *bond.Analysis `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: bondcalc -input <path>")
		fmt.Fprintln(os.Stderr, "Compute bond price/yield, accrued interest and risk metrics.")
		return
	}

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: bondcalc -input <path>")
			os.Exit(2)
		}
	}

	raw, err := readInput(path)
	if err != nil {
		exitError(fmt.Sprintf("read input: %v", err))
	}

	inputs, isArray, err := parseInputs(raw)
	if err != nil {
		exitError(fmt.Sprintf("parse JSON: %v", err))
	}

	hadError := false
	outputs := make([]calcOutput, 0, len(inputs))
	for _, in := range inputs {
		result, err := process(in)
		if err != nil {
			hadError = true
			outputs = append(outputs, calcOutput{TaskID: in.TaskID, Error: err.Error()})
			continue
		}
		outputs = append(outputs, calcOutput{TaskID: in.TaskID, Result: result})
	}

	if isArray {
		b, _ := json.Marshal(outputs)
		fmt.Println(string(b))
	} else {
		b, _ := json.Marshal(outputs[0])
		fmt.Println(string(b))
	}

	if hadError {
		os.Exit(1)
	}
}

func process(in calcInput) (*bond.Analysis, error) {
	issue, err := time.Parse("2006-01-02", in.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("invalid issue_date: %v", err)
	}
	maturity, err := time.Parse("2006-01-02", in.MaturityDate)
	if err != nil {
		return nil, fmt.Errorf("invalid maturity_date: %v", err)
	}
	settlement, err := time.Parse("2006-01-02", in.SettlementDate)
	if err != nil {
		return nil, fmt.Errorf("invalid settlement_date: %v", err)
	}

	b, err := bond.NewBond(bond.Bond{
		Name:            in.Name,
		Issuer:          in.Issuer,
		Type:            bond.Type(in.BondType),
		Currency:        bond.Currency(in.Currency),
		FaceValue:       in.FaceValue,
		CouponRate:      in.CouponRate,
		CouponFrequency: in.CouponFrequency,
		IssueDate:       issue,
		MaturityDate:    maturity,
	})
	if err != nil {
		return nil, err
	}

	result, err := bond.Analyze(bond.AnalysisRequest{
		Bond:           b,
		SettlementDate: settlement,
		Input:          bond.InputKind(in.Input),
		Value:          in.Value,
		IncludeTax:     in.IncludeTax,
		TaxRatePct:     in.TaxRatePct,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

func parseInputs(raw []byte) ([]calcInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []calcInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input calcInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []calcInput{input}, false, nil
}

func exitError(msg string) {
	b, _ := json.Marshal(calcOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
