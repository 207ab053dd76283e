package classify

import "github.com/AbdouB/persona/internal/models"

// socionicsByMBTI is the static MBTI -> socionics conversion. Extraverted
// codes carry over directly; introverted codes flip the J/P designator, per
// the conventional conversion.
var socionicsByMBTI = map[string]string{
	"ENTJ": "LIE (ENTj)",
	"ENTP": "ILE (ENTp)",
	"ENFJ": "EIE (ENFj)",
	"ENFP": "IEE (ENFp)",
	"ESTJ": "LSE (ESTj)",
	"ESTP": "SLE (ESTp)",
	"ESFJ": "ESE (ESFj)",
	"ESFP": "SEE (ESFp)",
	"INTJ": "ILI (INTp)",
	"INTP": "LII (INTj)",
	"INFJ": "IEI (INFp)",
	"INFP": "EII (INFj)",
	"ISTJ": "SLI (ISTp)",
	"ISTP": "LSI (ISTj)",
	"ISFJ": "SEI (ISFp)",
	"ISFP": "ESI (ISFj)",
}

// Socionics maps an already-computed MBTI code to its socionics type.
func Socionics(mbtiCode string) (string, error) {
	s, ok := socionicsByMBTI[mbtiCode]
	if !ok {
		return "", &models.ConfigError{Subject: "socionics", Reason: "no socionics mapping for MBTI code " + mbtiCode}
	}
	return s, nil
}
