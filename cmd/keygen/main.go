// Command keygen prints a PKCS#8 PEM private key suitable for SESSION_SIGNING_KEY.
package main

import (
	"flag"
	"fmt"

	"github.com/google/uuid"
	"github.com/jrsteele09/nexus-dashboard/token"
	"github.com/rs/zerolog/log"
)

func main() {
	alg := flag.String("alg", token.ES256, "signing algorithm: ES256 or RS256")
	bits := flag.Int("bits", 2048, "RSA key size")
	flag.Parse()

	var (
		kp  *token.KeyPair
		err error
	)
	switch *alg {
	case token.ES256:
		kp, err = token.GenerateECDSAKeyPair(uuid.NewString())
	case token.RS256:
		kp, err = token.GenerateRSAKeyPair(uuid.NewString(), *bits)
	default:
		log.Fatal().Str("alg", *alg).Msg("unsupported algorithm")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to generate key")
	}

	pemData, err := kp.ExportPrivateKeyPEM()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to export key")
	}
	fmt.Print(pemData)
}
