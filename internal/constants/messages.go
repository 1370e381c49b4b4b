package constants

// Field validation messages shown next to the offending input.
const (
	MsgProjectTitleRequired       = "Título do projeto é obrigatório"
	MsgProjectTypeRequired        = "Tipo de projeto é obrigatório"
	MsgCourseRequired             = "Curso é obrigatório"
	MsgProjectDescriptionRequired = "Descrição do projeto é obrigatória"
	MsgModalityRequired           = "Modalidade é obrigatória"
	MsgDimensaoRequired           = "A dimensão da HAE é obrigatória"
	MsgInvalidOption              = "Selecione uma opção válida"

	MsgStudentRAsRequired = "Informe pelo menos um RA"
	MsgStudentRAInvalid   = "O RA deve conter exatamente 13 números"

	MsgDayOfWeekRequired     = "Selecione pelo menos um dia da semana"
	MsgDayTimesRequired      = "Hora de início e fim são obrigatórias."
	MsgDayEndBeforeStart     = "A hora de fim deve ser após a de início."
	MsgDayDurationOutOfRange = "A duração deve ser entre 1 e 8 horas."
	MsgScheduleUnknownDay    = "O horário contém dias que não foram selecionados."

	MsgStartDateRequired  = "Data de início é obrigatória."
	MsgEndDateRequired    = "Data final é obrigatória."
	MsgDateInvalid        = "Data inválida. Use o formato AAAA-MM-DD."
	MsgEndDateNotAfter    = "A data final deve ser posterior à data de início."
	MsgStartDateInPast    = "A data de início deve ser hoje ou no futuro."
	MsgEndDateNotFuture   = "A data final não pode ser hoje nem no passado."
	MsgWeeklyHoursMinimum = "O total de horas semanais deve ser de no mínimo 1."
)

// Closure validation messages.
const (
	MsgTccRoleRequired            = "Por favor, informe se orientou ou apenas ajudou."
	MsgTccStudentCountRequired    = "Por favor, informe a quantidade de alunos."
	MsgTccStudentNamesRequired    = "Por favor, informe os nomes dos alunos."
	MsgTccApprovedRequired        = "Por favor, informe quais alunos foram aprovados."
	MsgTccProjectInfoRequired     = "Por favor, informe as informações do(s) projeto(s) orientado(s)."
	MsgEstagioStudentInfoRequired = "Por favor, informe as informações dos alunos atendidos."
	MsgEstagioApprovedRequired    = "Por favor, informe se os alunos foram aprovados ou não."
	MsgApoioTypeRequired          = "Por favor, selecione o tipo de apoio (Geral ou Curso)."
	MsgApoioDescriptionRequired   = "Por favor, forneça a descrição do que foi feito."
	MsgApoioDescriptionTooShort   = "A descrição deve ter no mínimo 4.000 caracteres."
	MsgApoioApprovedRequired      = "Por favor, informe os alunos aprovados."
	MsgApoioCertificateRequired   = "Por favor, informe os alunos que receberão certificado."
	MsgClosureUnknownProjectType  = "Tipo de HAE não reconhecido."
)

// Notices raised by the form controller.
const (
	MsgPriorSemesterIncomplete = "Você possui HAEs de semestres anteriores que não foram concluídas. Finalize-as para poder criar novas."
	MsgCreateSuccess           = "HAE solicitada com sucesso!"
	MsgCreateFailed            = "Erro ao processar sua solicitação."
	MsgUpdateSuccess           = "HAE atualizada com sucesso!"
	MsgUpdateFailed            = "Erro ao atualizar HAE."
	MsgConfirmUpdateTitle      = "Confirmar Alterações"
	MsgConfirmUpdate           = "Ao salvar as alterações, esta HAE retornará ao status \"PENDENTE\" e precisará ser reavaliada pelo coordenador."
	MsgRecordCompleted         = "Esta HAE já foi concluída e não pode mais ser editada."
	MsgLoadFailed              = "Não foi possível carregar os detalhes da HAE."
	MsgMissingRecordID         = "Nenhuma HAE foi informada para edição."
	MsgFixErrors               = "Corrija os campos destacados antes de continuar."
	MsgClosureSuccess          = "Solicitação de fechamento enviada com sucesso!"
	MsgClosureFailed           = "Falha ao enviar a solicitação. Tente novamente."
	MsgClosureNotAllowed       = "O fechamento só pode ser solicitado para HAEs aprovadas, a partir de uma semana antes do término."
)

// Responses of the development server.
const (
	MsgUnauthorized      = "Não autorizado."
	MsgInvalidBody       = "Dados da requisição inválidos."
	MsgHaeNotFound       = "HAE não encontrada."
	MsgProfessorNotFound = "Professor não encontrado."
	MsgEmailRequired     = "Informe o e-mail do professor."
	MsgStatusInvalid     = "Status inválido."
	MsgInternalError     = "Erro interno do servidor."
)
