package dataset

import (
	"fmt"
	"strings"
)

// Kind identifies which survey dataset a table holds. It is decided once, at load time.
type Kind int

const (
	KindTrips Kind = iota
	KindSocio
	KindDwellings
)

// Kinds lists every dataset kind in load order.
var Kinds = []Kind{KindTrips, KindSocio, KindDwellings}

var kindInfo = map[Kind]struct {
	key, name, file, column string
}{
	KindTrips:     {"trips", "Deslocamentos", "deslocamentos.csv", ColOriginCity},
	KindSocio:     {"socio", "Socio", "socio.csv", ColEducation},
	KindDwellings: {"dwellings", "Urbanisticos", "urbanisticos.csv", ColVisitStatus},
}

func (k Kind) String() string {
	if i, ok := kindInfo[k]; ok {
		return i.key
	}
	return "unknown"
}

// DisplayName is the logical table name shown to users.
func (k Kind) DisplayName() string { return kindInfo[k].name }

// DefaultFile is the file name looked up under the data directory.
func (k Kind) DefaultFile() string { return kindInfo[k].file }

// KeyColumn is the column that distinguishes this dataset from the other two.
func (k Kind) KeyColumn() string { return kindInfo[k].column }

// ParseKind accepts a kind key ("trips") or display name ("Deslocamentos"), case-insensitively.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, k := range Kinds {
		if strings.EqualFold(s, k.String()) || strings.EqualFold(s, k.DisplayName()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown dataset %q (use trips, socio or dwellings)", s)
}

// Survey column names.
const (
	// trips
	ColOriginCity      = "cidadeori"
	ColOriginCityLabel = "cidadeoritabulada"
	ColDestCity        = "cidadedes"
	ColSurveyorID      = "idpesquisador"
	ColMode            = "modo"
	ColOriginMotive    = "motivoori"
	ColDepartureTime   = "horasaida"

	// socio
	ColEducation = "escolaridadetabulada"
	ColSituation = "situacaotabulada"
	ColAge       = "idade"
	ColSex       = "sexo"
	ColIncome    = "rendamensal"

	// dwellings
	ColVisitStatus   = "condicaotabulada"
	ColSurveyorName  = "nomepesquisador"
	ColSurveyDate    = "data"
	ColDwellingType  = "tipodomicilio"
	ColResidenceCity = "cidaderesidencia"
	ColHasVehicle    = "possuiveiculo"
	ColHasInternet   = "internet"
	ColResidents     = "numresidentes"
	ColFamilyIncome  = "rendafamiliar"
)

// StatusCompleted marks a finished dwelling survey in ColVisitStatus.
const StatusCompleted = "Pesquisa concluída"
