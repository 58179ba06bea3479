package updater

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/moffa90/go-swupdate/protocol"
)

// Hex lengths of the key and IVT accepted by SetAESKey.
const (
	AESKeyLength = protocol.AESKeySize - 1
	AESIVTLength = protocol.AESIVTSize - 1
)

// SetAESKey sends the key used to decrypt encrypted images. key must be 64
// hex digits and ivt 32; both are checked before the engine is contacted.
//
// Example:
//
//	err := u.SetAESKey(ctx, os.Getenv("SWU_AES_KEY"), os.Getenv("SWU_AES_IVT"))
func (u *Updater) SetAESKey(ctx context.Context, key, ivt string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("set aes key: %w", err)
	}

	setter, ok := u.engine.(AESKeySetter)
	if !ok {
		return ErrUnsupported
	}
	if err := checkHex("key", key, AESKeyLength); err != nil {
		return err
	}
	if err := checkHex("ivt", ivt, AESIVTLength); err != nil {
		return err
	}

	if rc := setter.SetAESKey(key, ivt); rc < 0 {
		u.config.Logger.Error("engine rejected aes key")
		return &CommandError{Operation: "set aes key", Code: rc}
	}

	u.config.Logger.Info("aes key set")
	return nil
}

func checkHex(field, s string, want int) error {
	if len(s) != want {
		return &AESKeyError{Field: field, Length: len(s), Reason: fmt.Sprintf("want %d hex digits", want)}
	}
	if _, err := hex.DecodeString(s); err != nil {
		return &AESKeyError{Field: field, Length: len(s), Reason: "not hexadecimal"}
	}
	return nil
}
