// Package signal standardizes payloads shared between the scan engine and the control plane.
package signal

import "time"

// Result captures one evaluated round trip: base asset out to a candidate and
// back. Profit is carried both in base-asset smallest units and in the
// reference currency used for threshold comparison.
type Result struct {
	Symbol         string    `json:"symbol"`
	Address        string    `json:"address"`
	InputLamports  uint64    `json:"inputLamports"`
	OutputLamports uint64    `json:"outputLamports"`
	ProfitLamports int64     `json:"profitLamports"`
	ProfitUSD      float64   `json:"profitUsd"`
	ReferencePrice float64   `json:"referencePrice"`
	Executed       bool      `json:"executed"`
	Simulated      bool      `json:"simulated"`
	Signature      string    `json:"signature,omitempty"`
	Ts             time.Time `json:"ts"`
}
