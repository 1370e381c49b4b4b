package constants

// Weekday is one of the six teaching days a schedule can use
type Weekday string

// ProjectType classifies an HAE and decides which roster and closure fields apply
type ProjectType string

// Modality is how the activity is delivered
type Modality string

// Dimensao is one of the nine institutional categories of an HAE
type Dimensao string

// Status is the approval state of an HAE record on the server
type Status string

// TccRole records whether a professor supervised or only helped a TCC
type TccRole string

// ApoioType selects the flavour of an ApoioDirecao closure
type ApoioType string

const (
	Monday    Weekday = "Segunda Feira"
	Tuesday   Weekday = "Terça Feira"
	Wednesday Weekday = "Quarta Feira"
	Thursday  Weekday = "Quinta Feira"
	Friday    Weekday = "Sexta Feira"
	Saturday  Weekday = "Sábado"
)

// Weekdays lists every weekday in display order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Index returns the position of w in Weekdays, or -1 when w is unknown.
func (w Weekday) Index() int {
	for i, d := range Weekdays {
		if d == w {
			return i
		}
	}
	return -1
}

func (w Weekday) Valid() bool {
	return w.Index() >= 0
}

const (
	ProjectTypeApoioDirecao ProjectType = "ApoioDirecao"
	ProjectTypeEstagio      ProjectType = "Estagio"
	ProjectTypeTCC          ProjectType = "TCC"
)

// RequiresRoster reports whether drafts of this type must list student RAs.
func (p ProjectType) RequiresRoster() bool {
	return p == ProjectTypeTCC || p == ProjectTypeEstagio
}

func (p ProjectType) Valid() bool {
	_, ok := projectTypeLabels[p]
	return ok
}

func (p ProjectType) Label() string {
	if l, ok := projectTypeLabels[p]; ok {
		return l
	}
	return string(p)
}

const (
	ModalityPresencial Modality = "PRESENCIAL"
	ModalityHibrido    Modality = "HIBRIDO"
	ModalityOnline     Modality = "ONLINE"
)

func (m Modality) Valid() bool {
	_, ok := modalityLabels[m]
	return ok
}

func (m Modality) Label() string {
	if l, ok := modalityLabels[m]; ok {
		return l
	}
	return string(m)
}

const (
	Dimensao1DidaticoPedagogico     Dimensao = "DIMENSAO_1_DIDATICO_PEDAGOGICO"
	Dimensao2LaboratoriosEnsino     Dimensao = "DIMENSAO_2_LABORATORIOS_ENSINO_E_EQUIPAMENTOS"
	Dimensao3PesquisaExtensao       Dimensao = "DIMENSAO_3_PESQUISA_E_EXTENSAO_EQUIPAMENTOS_E_LABORATORIOS"
	Dimensao4AtividadesFormativas   Dimensao = "DIMENSAO_4_ATIVIDADES_FORMATIVAS"
	Dimensao5Infraestrutura         Dimensao = "DIMENSAO_5_INFRAESTRUTURA"
	Dimensao6DesenvolvimentoPessoas Dimensao = "DIMENSAO_6_DESENVOLVIMENTO_DE_PESSOAS"
	Dimensao7ConveniosParcerias     Dimensao = "DIMENSAO_7_CONVENIOS_E_PARCEIRAS_INSTITUCIONAIS"
	Dimensao8ImplantacaoCursos      Dimensao = "DIMENSAO_8_IMPLANTACAO_DE_CURSOS"
	Dimensao9GestaoRotina           Dimensao = "DIMENSAO_9_GESTAO_DA_ROTINA"
)

func (d Dimensao) Valid() bool {
	_, ok := dimensaoLabels[d]
	return ok
}

func (d Dimensao) Label() string {
	if l, ok := dimensaoLabels[d]; ok {
		return l
	}
	return string(d)
}

const (
	StatusPendente             Status = "PENDENTE"
	StatusAprovado             Status = "APROVADO"
	StatusReprovado            Status = "REPROVADO"
	StatusFechamentoSolicitado Status = "FECHAMENTO_SOLICITADO"
	StatusCompleto             Status = "COMPLETO"
)

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

const (
	TccRoleOrientou TccRole = "orientou"
	TccRoleAjudou   TccRole = "ajudou"
)

func (r TccRole) Valid() bool {
	return r == TccRoleOrientou || r == TccRoleAjudou
}

const (
	ApoioTypeGeral ApoioType = "geral"
	ApoioTypeCurso ApoioType = "curso"
)

func (a ApoioType) Valid() bool {
	return a == ApoioTypeGeral || a == ApoioTypeCurso
}

// Option pairs a wire value with its display label
type Option[T ~string] struct {
	Value T
	Label string
}

var ProjectTypeOptions = []Option[ProjectType]{
	{ProjectTypeApoioDirecao, "Apoio à Direção"},
	{ProjectTypeEstagio, "Estágio"},
	{ProjectTypeTCC, "Trabalho de Conclusão de Curso"},
}

var ModalityOptions = []Option[Modality]{
	{ModalityPresencial, "Presencial"},
	{ModalityHibrido, "Híbrido"},
	{ModalityOnline, "Online"},
}

var DimensaoOptions = []Option[Dimensao]{
	{Dimensao1DidaticoPedagogico, "Dimensão 1: Didático-Pedagógico"},
	{Dimensao2LaboratoriosEnsino, "Dimensão 2: Laboratórios - Ensino e Equipamentos"},
	{Dimensao3PesquisaExtensao, "Dimensão 3: Pesquisa e Extensão - Equipamentos e Laboratórios"},
	{Dimensao4AtividadesFormativas, "Dimensão 4: Atividades Formativas (IC, PCIs, Projetos de alunos, etc)"},
	{Dimensao5Infraestrutura, "Dimensão 5: Infraestrutura (Água, pisos, ventilação, refrigeração)"},
	{Dimensao6DesenvolvimentoPessoas, "Dimensão 6: Desenvolvimento de Pessoas (Capacitação, engetec, cursos livres)"},
	{Dimensao7ConveniosParcerias, "Dimensão 7: Convênios e Parcerias (IBM, JA, Parcerias com empresários)"},
	{Dimensao8ImplantacaoCursos, "Dimensão 8: Implantação de Cursos (Novos cursos superiores, AMS Design, outros)"},
	{Dimensao9GestaoRotina, "Dimensão 9: Gestão da Rotina (NDE, CEPE, CPA, ENADE, WebSai, inclusão, acessibilidade, atendimento ao aluno)"},
}

var StatusOptions = []Option[Status]{
	{StatusPendente, "Pendente"},
	{StatusAprovado, "Aprovado"},
	{StatusReprovado, "Reprovado"},
	{StatusFechamentoSolicitado, "Fechamento Solicitado"},
	{StatusCompleto, "Completo"},
}

var TccRoleOptions = []Option[TccRole]{
	{TccRoleOrientou, "Orientou"},
	{TccRoleAjudou, "Apenas ajudou"},
}

var ApoioTypeOptions = []Option[ApoioType]{
	{ApoioTypeGeral, "Geral"},
	{ApoioTypeCurso, "Curso"},
}

// Courses offered by the institution. The wire value is also the label.
var Courses = []string{
	"Análise e Desenvolvimento de Sistemas AMS",
	"Análise e Desenvolvimento de Sistemas",
	"Comercio Exterior",
	"Desenvolvimento de Produtos Plásticos",
	"Desenvolvimento de Software Multiplataforma",
	"Gestão de Recursos Humanos",
	"Gestão Empresarial",
	"Gestão Empresarial EAD",
	"Logística",
	"Polímeros",
}

var (
	projectTypeLabels = labels(ProjectTypeOptions)
	modalityLabels    = labels(ModalityOptions)
	dimensaoLabels    = labels(DimensaoOptions)
	statusLabels      = labels(StatusOptions)
)

func labels[T ~string](opts []Option[T]) map[T]string {
	m := make(map[T]string, len(opts))
	for _, o := range opts {
		m[o.Value] = o.Label
	}
	return m
}
