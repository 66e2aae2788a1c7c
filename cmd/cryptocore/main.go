// Command cryptocore is a small CLI exercising the Multi-Power RSA and
// Twofish cores: key generation, hybrid file encryption, a raw Twofish
// block mode, envelope inspection, and throughput benchmarking.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"cryptocore/internal/bench"
	"cryptocore/internal/fileformat"
	"cryptocore/pkg/twofish"
)

func usage() {
	fmt.Fprintf(os.Stderr, `cryptocore <command> [flags]

Commands:
  genkey           generate an MPRSA keypair
  encrypt          encrypt a file into a hybrid MPRSA+Twofish envelope
  decrypt          decrypt a hybrid envelope
  check            report an envelope's metadata without decrypting
  twofish-encrypt  encrypt a single 16-byte block with raw Twofish
  twofish-decrypt  decrypt a single 16-byte block with raw Twofish
  bench            benchmark MPRSA and Twofish throughput

Run "cryptocore <command> -h" for flags on a specific command.
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "genkey":
		err = runGenKey(os.Args[2:])
	case "encrypt":
		err = runEncrypt(os.Args[2:])
	case "decrypt":
		err = runDecrypt(os.Args[2:])
	case "check":
		err = runCheck(os.Args[2:])
	case "twofish-encrypt":
		err = runTwofishBlock(os.Args[2:], true)
	case "twofish-decrypt":
		err = runTwofishBlock(os.Args[2:], false)
	case "bench":
		err = runBench(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "cryptocore: unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "cryptocore: %v\n", err)
		os.Exit(1)
	}
}

func runGenKey(args []string) error {
	fs := flag.NewFlagSet("genkey", flag.ExitOnError)
	keySize := fs.Int("key-size", 2048, "MPRSA modulus size in bits")
	b := fs.Int("b", 2, "multi-power exponent (n = p^(b-1)*q)")
	stem := fs.String("out", "cryptocore", "output path stem; writes <stem>.pub and <stem>.priv")
	passphrase := fs.String("passphrase", "", "if set, seals the private key file with this passphrase")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := fileformat.GenKey(fileformat.GenKeyOptions{
		KeySize:    *keySize,
		B:          *b,
		OutputStem: *stem,
		Passphrase: *passphrase,
	})
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s and %s (key_size=%d b=%d sealed=%v)\n",
		res.PublicKeyPath, res.PrivateKeyPath, res.KeySize, res.B, res.Sealed)
	return nil
}

func runEncrypt(args []string) error {
	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)
	pubkey := fs.String("pubkey", "", "path to the recipient's .pub file")
	input := fs.String("input", "", "path to the plaintext file")
	output := fs.String("output", "", "output path; defaults to <input>.locked")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pubkey == "" || *input == "" {
		return fmt.Errorf("encrypt: -pubkey and -input are required")
	}
	out := *output
	if out == "" {
		out = *input + ".locked"
	}

	res, err := fileformat.Encrypt(fileformat.EncryptOptions{
		PublicKeyPath: *pubkey,
		InputPath:     *input,
		OutputPath:    out,
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s -> %s (%d plaintext bytes, %d envelope payload bytes)\n",
		res.InputPath, res.OutputPath, res.PlaintextSize, res.CiphertextSize)
	return nil
}

func runDecrypt(args []string) error {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	privkey := fs.String("privkey", "", "path to the recipient's .priv file")
	passphrase := fs.String("passphrase", "", "passphrase, if the private key file is sealed")
	input := fs.String("input", "", "path to the envelope file")
	output := fs.String("output", "", "output path for the recovered plaintext")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *privkey == "" || *input == "" || *output == "" {
		return fmt.Errorf("decrypt: -privkey, -input and -output are required")
	}

	res, err := fileformat.Decrypt(fileformat.DecryptOptions{
		PrivateKeyPath: *privkey,
		Passphrase:     *passphrase,
		InputPath:      *input,
		OutputPath:     *output,
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s -> %s (%d plaintext bytes)\n", res.InputPath, res.OutputPath, res.PlaintextSize)
	return nil
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	input := fs.String("input", "", "path to the envelope file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("check: -input is required")
	}

	res, err := fileformat.Check(fileformat.CheckOptions{InputPath: *input})
	if err != nil {
		return err
	}
	fmt.Printf("%s: version=%d key_size=%d wrapped_key_bytes=%d body_bytes=%d total_bytes=%d\n",
		res.InputPath, res.Version, res.KeySize, res.WrappedKeyBytes, res.BodyBytes, res.TotalFileBytes)
	return nil
}

func runTwofishBlock(args []string, encrypt bool) error {
	name := "twofish-decrypt"
	if encrypt {
		name = "twofish-encrypt"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	keyHex := fs.String("key-hex", "", "hex-encoded key, 16/24/32 bytes")
	blockHex := fs.String("block-hex", "", "hex-encoded 16-byte block")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *keyHex == "" || *blockHex == "" {
		return fmt.Errorf("%s: -key-hex and -block-hex are required", name)
	}

	key, err := decodeHex(*keyHex)
	if err != nil {
		return fmt.Errorf("%s: key: %w", name, err)
	}
	block, err := decodeHex(*blockHex)
	if err != nil {
		return fmt.Errorf("%s: block: %w", name, err)
	}

	c, err := twofish.NewCipher(key)
	if err != nil {
		return err
	}
	var out []byte
	if encrypt {
		out, err = c.EncryptBlock(block)
	} else {
		out, err = c.DecryptBlock(block)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%x\n", out)
	return nil
}

func runBench(args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	keySize := fs.Int("key-size", 1024, "MPRSA key_size for the keygen/encrypt/decrypt benchmark")
	b := fs.Int("b", 2, "MPRSA b for the benchmark")
	twofishKeyLen := fs.Int("twofish-key-len", 32, "Twofish key length (16, 24 or 32)")
	duration := fs.Duration("duration", 2*time.Second, "benchmark duration: each of the three MPRSA phases runs for half of it, the Twofish pass for all of it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Printf("Running mprsa keygen/encrypt/decrypt for %v per phase...\n", *duration/2)
	mprsaBar := bench.NewProgressBar(uint64(3 * (*duration / 2) / time.Millisecond))
	mprsaRes, err := bench.RunMPRSA(bench.MPRSAOptions{
		KeySize:  *keySize,
		B:        *b,
		Duration: *duration,
		Progress: func(elapsed, _ time.Duration) {
			mprsaBar.Update(uint64(elapsed / time.Millisecond))
		},
	})
	if err != nil {
		return fmt.Errorf("mprsa benchmark: %w", err)
	}
	mprsaBar.Finish()
	fmt.Printf("mprsa keygen:  %d ops in %v (%.2f ops/s)\n", mprsaRes.KeyGenOps, mprsaRes.KeyGenElapsed.Round(time.Millisecond), mprsaRes.KeyGenOpsPerS)
	fmt.Printf("mprsa encrypt: %d ops in %v (%.2f ops/s)\n", mprsaRes.EncryptOps, mprsaRes.EncryptElapsed.Round(time.Millisecond), mprsaRes.EncryptOpsPerS)
	fmt.Printf("mprsa decrypt: %d ops in %v (%.2f ops/s)\n", mprsaRes.DecryptOps, mprsaRes.DecryptElapsed.Round(time.Millisecond), mprsaRes.DecryptOpsPerS)

	fmt.Printf("Running twofish block-throughput pass for %v...\n", *duration)
	twofishBar := bench.NewProgressBar(uint64(*duration / time.Millisecond))
	twofishRes, err := bench.RunTwofish(bench.TwofishOptions{
		KeyLen:   *twofishKeyLen,
		Duration: *duration,
		Progress: func(elapsed, _ time.Duration) {
			twofishBar.Update(uint64(elapsed / time.Millisecond))
		},
	})
	if err != nil {
		return fmt.Errorf("twofish benchmark: %w", err)
	}
	twofishBar.Finish()
	fmt.Printf("twofish blocks: %d in %v (%.2f blocks/s, %.2f MiB/s)\n",
		twofishRes.Blocks, twofishRes.Elapsed.Round(time.Millisecond), twofishRes.BlocksPerSec, twofishRes.BytesPerSecMB)

	fmt.Printf("\n=== Time Estimates (encrypting at measured decrypt rate) ===\n")
	for _, chunks := range []uint64{1, 1_000, 1_000_000} {
		estimated := bench.EstimateTime(chunks, mprsaRes.DecryptOpsPerS)
		fmt.Printf("%d mprsa chunks: %s\n", chunks, bench.FormatDuration(estimated))
	}
	for _, mib := range []uint64{1, 100, 1024} {
		blocksNeeded := mib * 1024 * 1024 / twofish.BlockSize
		estimated := bench.EstimateTime(blocksNeeded, twofishRes.BlocksPerSec)
		fmt.Printf("%d MiB twofish body: %s\n", mib, bench.FormatDuration(estimated))
	}

	return nil
}
