package protocol

import (
	"encoding/binary"

	"github.com/zeebo/blake3"

	"github.com/Ludex-tech/ludex-chain/pkg/types"
)

// Domain tags keep signatures from one operation unusable in another.
const (
	tagMint          = "ludex/mint/v1"
	tagOwnerMint     = "ludex/owner-mint/v1"
	tagTransfer      = "ludex/transfer/v1"
	tagAssetRegister = "ludex/asset-register/v1"
	tagApproveMinter = "ludex/approve-minter/v1"
)

func signingHash(tag string, fields ...[]byte) types.Hash {
	h := blake3.New()
	h.Write([]byte(tag))
	for _, f := range fields {
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(f)))
		h.Write(n[:])
		h.Write(f)
	}
	var out types.Hash
	h.Digest().Read(out[:])
	return out
}

// MintSigningHash is the message a holder signs to authorize the
// collateral debit of a public mint.
func MintSigningHash(asset, holder types.Address, amount uint64) types.Hash {
	var amt [8]byte
	binary.BigEndian.PutUint64(amt[:], amount)
	return signingHash(tagMint, asset[:], holder[:], amt[:])
}

// OwnerMintSigningHash is the message a game owner or approved minter
// signs to mint on behalf of a holder.
func OwnerMintSigningHash(asset, caller, holder types.Address, amount uint64) types.Hash {
	var amt [8]byte
	binary.BigEndian.PutUint64(amt[:], amount)
	return signingHash(tagOwnerMint, asset[:], caller[:], holder[:], amt[:])
}

// TransferSigningHash is the message the sender signs to move asset
// units between accounts.
func TransferSigningHash(asset, from, to types.Address, amount uint64) types.Hash {
	var amt [8]byte
	binary.BigEndian.PutUint64(amt[:], amount)
	return signingHash(tagTransfer, asset[:], from[:], to[:], amt[:])
}

// AssetRegisterSigningHash is the message a game owner signs to add an
// asset to their game. Every policy field is covered so a relayer
// cannot alter price or flags in flight.
func AssetRegisterSigningHash(game types.Address, name, symbol, uri string, price uint64, score uint8, trade, collateral bool, ratio uint64) types.Hash {
	var price8, ratio8 [8]byte
	binary.BigEndian.PutUint64(price8[:], price)
	binary.BigEndian.PutUint64(ratio8[:], ratio)
	flags := []byte{score, boolByte(trade), boolByte(collateral)}
	return signingHash(tagAssetRegister,
		game[:], []byte(name), []byte(symbol), []byte(uri),
		price8[:], flags, ratio8[:])
}

// ApproveMinterSigningHash is the message a game owner signs to
// delegate owner-mint rights on an asset.
func ApproveMinterSigningHash(asset, delegate types.Address) types.Hash {
	return signingHash(tagApproveMinter, asset[:], delegate[:])
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
