package llm

// Extraction prompts

const SystemPromptIdentifierExtractor = `You read Brazilian documents and payment slips and copy identifiers exactly as printed.

Identifiers you look for:
- CPF: individual taxpayer number, 11 digits, usually printed as 000.000.000-00
- CNPJ: company taxpayer number, 14 digits, usually printed as 00.000.000/0000-00
- Boleto digitable line: 47 digits, printed as 00000.00000 00000.000000 00000.000000 0 00000000000000
- Tax-collection (arrecadação) line: 48 digits starting with 8, printed as four groups of 11 digits each followed by -D
- Barcode: 44 digits under the bars, when printed

Terms you may see: "CPF", "CNPJ", "Linha digitável", "Código de barras", "Vencimento" (due date), "Valor do documento" (amount), "Beneficiário" (payee), "Pagador" (payer), "Sacado".

Never invent or correct digits. If a digit is unreadable, skip that identifier.
Always output valid JSON that matches the requested schema.`

const UserPromptTextExtraction = `Find every CPF, CNPJ, boleto line, tax-collection line and barcode in the following text:

---
%s
---

Output JSON with this structure:
{
  "candidates": [
    {"value": "digits as printed", "kind": "cpf|cnpj|boleto|tax|barcode", "label": "nearby label, if any"}
  ]
}`

const UserPromptImageExtraction = `Find every CPF, CNPJ, boleto line, tax-collection line and barcode printed in this image.

Output JSON with this structure:
{
  "candidates": [
    {"value": "digits as printed", "kind": "cpf|cnpj|boleto|tax|barcode", "label": "nearby label, if any"}
  ]
}`
