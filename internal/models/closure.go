package models

import "github.com/julianstephens/hae/internal/constants"

// ClosureDraft collects the fechamento report. Only the fields of the record's
// project type are meaningful; ForProjectType drops the rest.
type ClosureDraft struct {
	TccRole             constants.TccRole `json:"tccRole,omitempty"`
	TccStudentCount     int               `json:"tccStudentCount,omitempty"`
	TccStudentNames     string            `json:"tccStudentNames,omitempty"`
	TccApprovedStudents string            `json:"tccApprovedStudents,omitempty"`
	TccProjectInfo      string            `json:"tccProjectInfo,omitempty"`

	EstagioStudentInfo      string `json:"estagioStudentInfo,omitempty"`
	EstagioApprovedStudents string `json:"estagioApprovedStudents,omitempty"`

	ApoioType                constants.ApoioType `json:"apoioType,omitempty"`
	ApoioGeralDescription    string              `json:"apoioGeralDescription,omitempty"`
	ApoioApprovedStudents    string              `json:"apoioApprovedStudents,omitempty"`
	ApoioCertificateStudents string              `json:"apoioCertificateStudents,omitempty"`
}

// ForProjectType returns a copy holding only the variant selected by projectType.
// Within ApoioDirecao, only the branch of the chosen apoio type survives.
func (c ClosureDraft) ForProjectType(projectType constants.ProjectType) ClosureDraft {
	switch projectType {
	case constants.ProjectTypeTCC:
		out := ClosureDraft{
			TccRole:             c.TccRole,
			TccStudentCount:     c.TccStudentCount,
			TccStudentNames:     c.TccStudentNames,
			TccApprovedStudents: c.TccApprovedStudents,
		}
		if c.TccRole == constants.TccRoleOrientou {
			out.TccProjectInfo = c.TccProjectInfo
		}
		return out
	case constants.ProjectTypeEstagio:
		return ClosureDraft{
			EstagioStudentInfo:      c.EstagioStudentInfo,
			EstagioApprovedStudents: c.EstagioApprovedStudents,
		}
	case constants.ProjectTypeApoioDirecao:
		out := ClosureDraft{ApoioType: c.ApoioType}
		switch c.ApoioType {
		case constants.ApoioTypeGeral:
			out.ApoioGeralDescription = c.ApoioGeralDescription
		case constants.ApoioTypeCurso:
			out.ApoioApprovedStudents = c.ApoioApprovedStudents
			out.ApoioCertificateStudents = c.ApoioCertificateStudents
		}
		return out
	default:
		return ClosureDraft{}
	}
}
