package checksum

// Pre-built engines shared by the document validators and the line codec.
var (
	// Mod10 is the boleto block digit: weights 2,1 with digit summation
	Mod10 = MustNew(Config{
		Modulus:       10,
		Weights:       []int{2, 1},
		SumDigits:     true,
		Complement:    true,
		Substitutions: Substitute("0", 10),
	})

	// Mod11 is the modulus 11 digit with default weights 2..9
	Mod11 = MustNew(Config{
		Complement:    true,
		Substitutions: Substitute("0", 10, 11),
	})

	// BarcodeMod11 is the general digit of a standard bank barcode,
	// where results 10 and 11 become 1
	BarcodeMod11 = MustNew(Config{
		Complement:    true,
		Substitutions: Substitute("1", 10, 11),
	})

	// CPFMod11 uses weights 2..11 so that both CPF passes use a single cycle
	CPFMod11 = MustNew(Config{
		Weights:       Range(2, 11),
		Complement:    true,
		Substitutions: Substitute("0", 10, 11),
	})
)

// ForTaxValueKind picks the engine of a tax-collection slip from its third
// digit: 6 and 7 use Mod10, anything else Mod11.
func ForTaxValueKind(c byte) *Engine {
	if c == '6' || c == '7' {
		return Mod10
	}
	return Mod11
}
