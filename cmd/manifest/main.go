// Command manifest prints the signed /.well-known/farcaster.json for a
// domain. The custody key is read from FARCASTER_PRIVATE_KEY.
package main

import (
	"encoding/json"
	"flag"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/joho/godotenv"

	"nardchat/internal/chain"
	"nardchat/internal/logger"
)

func main() {
	domain := flag.String("domain", "", "mini app domain, e.g. mininardchat.vercel.app")
	fid := flag.Uint64("fid", 0, "farcaster id of the custody account")
	out := flag.String("out", "", "write to this file instead of stdout")
	flag.Parse()

	logger.Init("info", true)
	_ = godotenv.Load()

	if *domain == "" || *fid == 0 {
		flag.Usage()
		os.Exit(2)
	}

	hexKey := strings.TrimPrefix(strings.TrimSpace(os.Getenv("FARCASTER_PRIVATE_KEY")), "0x")
	if hexKey == "" {
		logger.Log.Fatal().Msg("FARCASTER_PRIVATE_KEY is not set")
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("invalid FARCASTER_PRIVATE_KEY")
	}

	m, err := chain.BuildManifest(key, *fid, *domain)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("build manifest")
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("encode manifest")
	}
	data = append(data, '\n')

	if *out == "" {
		_, _ = os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Log.Fatal().Err(err).Msg("write manifest")
	}
	logger.Log.Info().Str("file", *out).Str("domain", *domain).Msg("manifest written")
}
