package validation

import (
	"unicode/utf8"

	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/models"
	"github.com/julianstephens/hae/internal/utils"
)

// ValidateClosure checks a closure report against the rules of the record's project type.
// Each project type has its own validator; an unknown type is itself an error.
func (v *Validator) ValidateClosure(projectType constants.ProjectType, c models.ClosureDraft) Errors {
	errs := NewErrors()

	switch projectType {
	case constants.ProjectTypeTCC:
		validateTccClosure(c, errs)
	case constants.ProjectTypeEstagio:
		validateEstagioClosure(c, errs)
	case constants.ProjectTypeApoioDirecao:
		validateApoioClosure(c, errs)
	default:
		errs.Add("projectType", constants.MsgClosureUnknownProjectType)
	}

	return errs
}

func validateTccClosure(c models.ClosureDraft, errs Errors) {
	if !c.TccRole.Valid() {
		errs.Add("tccRole", constants.MsgTccRoleRequired)
	}
	if c.TccStudentCount < constants.MinTccStudentCount {
		errs.Add("tccStudentCount", constants.MsgTccStudentCountRequired)
	}
	if utils.IsBlank(c.TccStudentNames) {
		errs.Add("tccStudentNames", constants.MsgTccStudentNamesRequired)
	}
	if utils.IsBlank(c.TccApprovedStudents) {
		errs.Add("tccApprovedStudents", constants.MsgTccApprovedRequired)
	}
	if c.TccRole == constants.TccRoleOrientou && utils.IsBlank(c.TccProjectInfo) {
		errs.Add("tccProjectInfo", constants.MsgTccProjectInfoRequired)
	}
}

func validateEstagioClosure(c models.ClosureDraft, errs Errors) {
	if utils.IsBlank(c.EstagioStudentInfo) {
		errs.Add("estagioStudentInfo", constants.MsgEstagioStudentInfoRequired)
	}
	if utils.IsBlank(c.EstagioApprovedStudents) {
		errs.Add("estagioApprovedStudents", constants.MsgEstagioApprovedRequired)
	}
}

func validateApoioClosure(c models.ClosureDraft, errs Errors) {
	switch c.ApoioType {
	case constants.ApoioTypeGeral:
		switch {
		case utils.IsBlank(c.ApoioGeralDescription):
			errs.Add("apoioGeralDescription", constants.MsgApoioDescriptionRequired)
		case utf8.RuneCountInString(c.ApoioGeralDescription) < constants.MinApoioGeralDescriptionLength:
			errs.Add("apoioGeralDescription", constants.MsgApoioDescriptionTooShort)
		}
	case constants.ApoioTypeCurso:
		if utils.IsBlank(c.ApoioApprovedStudents) {
			errs.Add("apoioApprovedStudents", constants.MsgApoioApprovedRequired)
		}
		if utils.IsBlank(c.ApoioCertificateStudents) {
			errs.Add("apoioCertificateStudents", constants.MsgApoioCertificateRequired)
		}
	default:
		errs.Add("apoioType", constants.MsgApoioTypeRequired)
	}
}
