package discovery

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/davecgh/go-spew/spew"
	"github.com/go-errors/errors"

	"github.com/lnroute/routingcore/lnwire"
)

// validateChannelAnn validates a channel_announcement: all four signatures
// (two node, two funding) must cover the same digest of the announcement's
// signed payload.
func (d *AuthenticatedGossiper) validateChannelAnn(a *lnwire.ChannelAnnouncement) error {
	dataHash := d.cfg.Verifier.Sha256d(a.DataToSign())

	if !d.cfg.Verifier.VerifyECDSA(dataHash[:], a.BitcoinSig1, a.BitcoinKey1) {
		return errors.New("can't verify first bitcoin signature")
	}
	if !d.cfg.Verifier.VerifyECDSA(dataHash[:], a.BitcoinSig2, a.BitcoinKey2) {
		return errors.New("can't verify second bitcoin signature")
	}
	if !d.cfg.Verifier.VerifyECDSA(dataHash[:], a.NodeSig1, a.NodeID1) {
		return errors.New("can't verify data in first node signature")
	}
	if !d.cfg.Verifier.VerifyECDSA(dataHash[:], a.NodeSig2, a.NodeID2) {
		return errors.New("can't verify data in second node signature")
	}

	return nil
}

// validateNodeAnn validates that Signature covers DataToSign under NodeID.
func (d *AuthenticatedGossiper) validateNodeAnn(a *lnwire.NodeAnnouncement) error {
	dataHash := d.cfg.Verifier.Sha256d(a.DataToSign())

	if !d.cfg.Verifier.VerifyECDSA(dataHash[:], a.Signature, a.NodeID) {
		return errors.New("signature on node announcement is invalid")
	}

	return nil
}

// validateChannelUpdateAnn validates that a channel_update's signature
// covers its signed payload under the issuing direction's node key.
func (d *AuthenticatedGossiper) validateChannelUpdateAnn(pubKey *btcec.PublicKey,
	a *lnwire.ChannelUpdate) error {

	dataHash := d.cfg.Verifier.Sha256d(a.DataToSign())

	if !d.cfg.Verifier.VerifyECDSA(dataHash[:], a.Signature, pubKey) {
		return errors.Errorf("invalid signature for channel update %v",
			spew.Sdump(a))
	}

	return nil
}
