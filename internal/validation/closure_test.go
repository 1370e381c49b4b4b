package validation

import (
	"strings"
	"testing"

	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/models"
)

func TestValidateClosure(t *testing.T) {
	longText := strings.Repeat("a", constants.MinApoioGeralDescriptionLength)

	tests := []struct {
		name        string
		projectType constants.ProjectType
		closure     models.ClosureDraft
		wantFields  []string
	}{
		{
			name:        "tcc helper complete",
			projectType: constants.ProjectTypeTCC,
			closure: models.ClosureDraft{
				TccRole:             constants.TccRoleAjudou,
				TccStudentCount:     1,
				TccStudentNames:     "Ana",
				TccApprovedStudents: "Ana",
			},
		},
		{
			name:        "tcc supervisor needs project info",
			projectType: constants.ProjectTypeTCC,
			closure: models.ClosureDraft{
				TccRole:             constants.TccRoleOrientou,
				TccStudentCount:     2,
				TccStudentNames:     "Ana, Bruno",
				TccApprovedStudents: "Ana",
			},
			wantFields: []string{"tccProjectInfo"},
		},
		{
			name:        "tcc empty",
			projectType: constants.ProjectTypeTCC,
			wantFields:  []string{"tccRole", "tccStudentCount", "tccStudentNames", "tccApprovedStudents"},
		},
		{
			name:        "tcc blank names",
			projectType: constants.ProjectTypeTCC,
			closure: models.ClosureDraft{
				TccRole:             constants.TccRoleAjudou,
				TccStudentCount:     1,
				TccStudentNames:     "   ",
				TccApprovedStudents: "Ana",
			},
			wantFields: []string{"tccStudentNames"},
		},
		{
			name:        "estagio complete",
			projectType: constants.ProjectTypeEstagio,
			closure: models.ClosureDraft{
				EstagioStudentInfo:      "Empresa Y",
				EstagioApprovedStudents: "Todos",
			},
		},
		{
			name:        "estagio empty",
			projectType: constants.ProjectTypeEstagio,
			wantFields:  []string{"estagioStudentInfo", "estagioApprovedStudents"},
		},
		{
			name:        "apoio without type",
			projectType: constants.ProjectTypeApoioDirecao,
			wantFields:  []string{"apoioType"},
		},
		{
			name:        "apoio geral at minimum length",
			projectType: constants.ProjectTypeApoioDirecao,
			closure: models.ClosureDraft{
				ApoioType:             constants.ApoioTypeGeral,
				ApoioGeralDescription: longText,
			},
		},
		{
			name:        "apoio geral one short",
			projectType: constants.ProjectTypeApoioDirecao,
			closure: models.ClosureDraft{
				ApoioType:             constants.ApoioTypeGeral,
				ApoioGeralDescription: longText[1:],
			},
			wantFields: []string{"apoioGeralDescription"},
		},
		{
			name:        "apoio curso ignores description",
			projectType: constants.ProjectTypeApoioDirecao,
			closure: models.ClosureDraft{
				ApoioType:                constants.ApoioTypeCurso,
				ApoioApprovedStudents:    "Carla",
				ApoioCertificateStudents: "Carla",
			},
		},
		{
			name:        "apoio curso empty",
			projectType: constants.ProjectTypeApoioDirecao,
			closure:     models.ClosureDraft{ApoioType: constants.ApoioTypeCurso},
			wantFields:  []string{"apoioApprovedStudents", "apoioCertificateStudents"},
		},
		{
			name:        "unknown project type",
			projectType: "Outro",
			wantFields:  []string{"projectType"},
		},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateClosure(tt.projectType, tt.closure)

			got := errs.Fields()
			if len(got) != len(tt.wantFields) {
				t.Fatalf("Fields() = %v, want %v", got, tt.wantFields)
			}
			for i := range got {
				if got[i] != tt.wantFields[i] {
					t.Errorf("Fields()[%d] = %q, want %q", i, got[i], tt.wantFields[i])
				}
			}
		})
	}
}

func TestValidateClosure_DescriptionMessages(t *testing.T) {
	v := New()

	errs := v.ValidateClosure(constants.ProjectTypeApoioDirecao, models.ClosureDraft{
		ApoioType:             constants.ApoioTypeGeral,
		ApoioGeralDescription: "  ",
	})
	if errs["apoioGeralDescription"] != constants.MsgApoioDescriptionRequired {
		t.Errorf("blank description: %q", errs["apoioGeralDescription"])
	}

	errs = v.ValidateClosure(constants.ProjectTypeApoioDirecao, models.ClosureDraft{
		ApoioType:             constants.ApoioTypeGeral,
		ApoioGeralDescription: "curto",
	})
	if errs["apoioGeralDescription"] != constants.MsgApoioDescriptionTooShort {
		t.Errorf("short description: %q", errs["apoioGeralDescription"])
	}
}

func TestValidateClosure_CountsCharactersNotBytes(t *testing.T) {
	v := New()
	desc := strings.Repeat("ç", constants.MinApoioGeralDescriptionLength)

	errs := v.ValidateClosure(constants.ProjectTypeApoioDirecao, models.ClosureDraft{
		ApoioType:             constants.ApoioTypeGeral,
		ApoioGeralDescription: desc,
	})
	if len(errs) != 0 {
		t.Errorf("expected multibyte description to pass, got %v", errs)
	}
}
