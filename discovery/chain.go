package discovery

// ChainConfirmation is the payload the on-chain collaborator delivers
// asynchronously once it has resolved a pending channel's funding output.
// An empty Script means the output is spent or unknown.
type ChainConfirmation struct {
	ShortChannelID uint64
	SatoshiValue   int64
	Script         []byte
}

// Confirmer is the on-chain collaborator: given a scid, it eventually
// resolves whether the channel's funding output exists unspent and
// returns its script and value. The routing core never calls this
// synchronously; confirmations arrive as input to
// AuthenticatedGossiper.ProcessOnChainConfirmation.
type Confirmer interface {
	Confirm(scid uint64) <-chan ChainConfirmation
}
