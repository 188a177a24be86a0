package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"math/rand"
	"os"
	"path/filepath"
)

// GoldenCase represents a single modular arithmetic test case in the
// golden file. All values are decimal strings.
type GoldenCase struct {
	Op      string `json:"op"`
	X       string `json:"x"`
	Y       string `json:"y,omitempty"`
	Modulus string `json:"modulus,omitempty"`
	Bits    uint   `json:"bits"`
	Result  string `json:"result"`
	// OK is false for inversion cases with no inverse.
	OK bool `json:"ok"`
}

// goldenSeed fixes the pseudorandom operand stream so regenerating the
// file is reproducible.
const goldenSeed = 0x5eed

func main() {
	outputDir := flag.String("out", "bigint/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "modular_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	// math/big serves as the oracle. Cases cover a spread of widths so
	// both the single-limb and multi-limb paths get exercised, with odd
	// moduli throughout for the exponentiation cases.
	widths := []uint{16, 64, 128, 256, 1024}
	rng := rand.New(rand.NewSource(goldenSeed))

	var data []GoldenCase

	fmt.Println("Generating golden data...")

	for _, bits := range widths {
		x := randomBig(rng, bits)
		y := randomBig(rng, bits)
		m := randomBig(rng, bits)
		m.SetBit(m, 0, 1) // odd modulus
		e := randomBig(rng, 64)

		data = append(data,
			binCase("add", x, y, bits, new(big.Int).Add(x, y)),
			binCase("mul", x, y, bits, new(big.Int).Mul(x, y)),
			modCase("mod", x, nil, m, bits, new(big.Int).Mod(x, m)),
			modCase("expmod", x, e, m, bits, new(big.Int).Exp(x, e, m)),
		)

		inv := new(big.Int).ModInverse(x, m)
		c := modCase("invmod", x, nil, m, bits, inv)
		if inv == nil {
			c.Result = ""
			c.OK = false
		}
		data = append(data, c)
		fmt.Printf("Generated %d-bit cases\n", bits)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated golden file at %s\n", filename)
}

// randomBig draws a pseudorandom integer of exactly the given bit width
// (top bit set) from rng.
func randomBig(rng *rand.Rand, bits uint) *big.Int {
	buf := make([]byte, (bits+7)/8)
	rng.Read(buf)
	v := new(big.Int).SetBytes(buf)
	mask := new(big.Int).Lsh(big.NewInt(1), bits)
	mask.Sub(mask, big.NewInt(1))
	v.And(v, mask)
	v.SetBit(v, int(bits-1), 1)
	return v
}

func binCase(op string, x, y *big.Int, bits uint, result *big.Int) GoldenCase {
	return GoldenCase{
		Op: op, X: x.String(), Y: y.String(), Bits: bits,
		Result: result.String(), OK: true,
	}
}

func modCase(op string, x, y, m *big.Int, bits uint, result *big.Int) GoldenCase {
	c := GoldenCase{Op: op, X: x.String(), Modulus: m.String(), Bits: bits, OK: true}
	if y != nil {
		c.Y = y.String()
	}
	if result != nil {
		c.Result = result.String()
	}
	return c
}
