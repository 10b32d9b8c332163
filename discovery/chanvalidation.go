package discovery

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/fastsha256"
)

// genFundingScriptPubKey re-derives the expected P2WSH scriptPubKey for a
// channel's 2-of-2 funding output from its two funding (Bitcoin) keys,
// mirroring lnwallet's genFundingPkScript/genMultiSigScript. The on-chain
// confirmation callback checks the channel's funding output script
// against this before the channel is adopted.
func genFundingScriptPubKey(key1, key2 *btcec.PublicKey) ([]byte, error) {
	redeemScript, err := genMultiSigScript(key1, key2)
	if err != nil {
		return nil, err
	}
	return witnessScriptHash(redeemScript)
}

// genMultiSigScript generates the bare (non-P2SH) 2-of-2 multisig redeem
// script for the two funding keys, sorted lexicographically per BOLT #3.
func genMultiSigScript(key1, key2 *btcec.PublicKey) ([]byte, error) {
	aPub := key1.SerializeCompressed()
	bPub := key2.SerializeCompressed()

	if bytes.Compare(aPub, bPub) == 1 {
		aPub, bPub = bPub, aPub
	}

	builder := txscript.NewScriptBuilder()
	builder.AddOp(txscript.OP_2)
	builder.AddData(aPub)
	builder.AddData(bPub)
	builder.AddOp(txscript.OP_2)
	builder.AddOp(txscript.OP_CHECKMULTISIG)
	return builder.Script()
}

// witnessScriptHash generates a version-0 P2WSH scriptPubKey paying to the
// given redeem script.
func witnessScriptHash(redeemScript []byte) ([]byte, error) {
	scriptHash := fastsha256.Sum256(redeemScript)

	builder := txscript.NewScriptBuilder()
	builder.AddOp(txscript.OP_0)
	builder.AddData(scriptHash[:])
	return builder.Script()
}
