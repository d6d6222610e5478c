package model

// Kind identifies the document an identifier belongs to
type Kind string

const (
	KindCPF     Kind = "cpf"
	KindCNPJ    Kind = "cnpj"
	KindBoleto  Kind = "boleto"
	KindTax     Kind = "tax"
	KindUnknown Kind = "unknown"
)

// Standard lengths, in digits
const (
	CPFLength          = 11
	CNPJLength         = 14
	BarcodeLength      = 44
	StandardLineLength = 47
	TaxLineLength      = 48
)

// TaxMarker is the leading digit of tax-collection slips
const TaxMarker = '8'

// String returns a human readable name
func (k Kind) String() string {
	switch k {
	case KindCPF:
		return "CPF"
	case KindCNPJ:
		return "CNPJ"
	case KindBoleto:
		return "Boleto"
	case KindTax:
		return "Tax collection"
	default:
		return "Unknown"
	}
}
