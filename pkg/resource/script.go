package resource

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// Script is a decoded output locking script.
type Script struct {
	Class        txscript.ScriptClass
	Addresses    []string
	RequiredSigs int
}

// DecodeScript parses a hex-encoded locking script and extracts its addresses.
// Non-standard scripts decode to NonStandardTy with no addresses.
func DecodeScript(hexScript string, params *chaincfg.Params) (*Script, error) {
	if params == nil {
		params = &chaincfg.MainNetParams
	}
	scriptBytes, err := hex.DecodeString(hexScript)
	if err != nil {
		return nil, fmt.Errorf("decode script hex: %w", err)
	}
	class, addrs, required, err := txscript.ExtractPkScriptAddrs(scriptBytes, params)
	if err != nil {
		return nil, fmt.Errorf("extract script addresses: %w", err)
	}

	result := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		result = append(result, addr.EncodeAddress())
	}
	return &Script{Class: class, Addresses: result, RequiredSigs: required}, nil
}

// ChainParams maps a network name to its chain parameters.
func ChainParams(network string) (*chaincfg.Params, error) {
	switch strings.ToLower(network) {
	case "", "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}
