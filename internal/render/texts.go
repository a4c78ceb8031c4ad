package render

// Fixed header wording shared by the spreadsheet and document outputs.
// The validity line is appended at run time.
const (
	OrgName         = "Prefeitura da Cidade do Rio de Janeiro"
	DocOrgLine      = "SECRETARIA DE EDUCAÇÃO"
	DocLinkLine     = "http://www.rio.rj.gov.br/web/sme/pnae"
	TableTitle      = "Tabela de Preços de Mercado de Gêneros Alimentícios"
	ExplanatoryText = "A tabela é referência para as aquisições realizadas pelos diversos órgãos do município " +
		"e tem o preço dos itens apurado conforme estabelecido no Art. 1º do Decreto nº 51.017/2022 " +
		"e alterações, que estabelece que o preço praticado pelo município e divulgado nesta tabela " +
		"seja um preço intermediário entre os preços no mercado de atacado e de varejo."
)
