package spring

type Stereotype string

const (
	StereotypeService       Stereotype = "SERVICE"
	StereotypeRepository    Stereotype = "REPOSITORY"
	StereotypeController    Stereotype = "CONTROLLER"
	StereotypeComponent     Stereotype = "COMPONENT"
	StereotypeConfiguration Stereotype = "CONFIGURATION"
)

// StereotypeMarker maps one annotation type to the stereotype it declares
type StereotypeMarker struct {
	Annotation string     `mapstructure:"annotation" yaml:"annotation" validate:"required"`
	Type       Stereotype `mapstructure:"type" yaml:"type" validate:"required,oneof=SERVICE REPOSITORY CONTROLLER COMPONENT CONFIGURATION"`
}

// Markers are the annotation names the detector recognises. They are held
// per detector so that different marker sets can be used side by side.
type Markers struct {
	Stereotypes []StereotypeMarker `mapstructure:"stereotypes" yaml:"stereotypes" validate:"required,min=1,dive"`
	Autowired   []string           `mapstructure:"autowired" yaml:"autowired" validate:"required,min=1,dive,required"`
	Lazy        []string           `mapstructure:"lazy" yaml:"lazy" validate:"dive,required"`
	Primary     []string           `mapstructure:"primary" yaml:"primary" validate:"dive,required"`
	Qualifier   []string           `mapstructure:"qualifier" yaml:"qualifier" validate:"dive,required"`
	Scope       []string           `mapstructure:"scope" yaml:"scope" validate:"dive,required"`
}

// DefaultMarkers returns the Spring and JSR-330 annotation names
func DefaultMarkers() Markers {
	return Markers{
		Stereotypes: []StereotypeMarker{
			{"org.springframework.stereotype.Service", StereotypeService},
			{"org.springframework.stereotype.Repository", StereotypeRepository},
			{"org.springframework.stereotype.Controller", StereotypeController},
			{"org.springframework.web.bind.annotation.RestController", StereotypeController},
			{"org.springframework.stereotype.Component", StereotypeComponent},
			{"org.springframework.context.annotation.Configuration", StereotypeConfiguration},
			{"jakarta.inject.Named", StereotypeComponent},
			{"javax.inject.Named", StereotypeComponent},
		},
		Autowired: []string{
			"org.springframework.beans.factory.annotation.Autowired",
			"jakarta.inject.Inject",
			"javax.inject.Inject",
			"jakarta.annotation.Resource",
			"javax.annotation.Resource",
		},
		Lazy:    []string{"org.springframework.context.annotation.Lazy"},
		Primary: []string{"org.springframework.context.annotation.Primary"},
		Qualifier: []string{
			"org.springframework.beans.factory.annotation.Qualifier",
			"jakarta.inject.Named",
			"javax.inject.Named",
		},
		Scope: []string{"org.springframework.context.annotation.Scope"},
	}
}

// markerIndex is the lookup form of Markers
type markerIndex struct {
	stereotypes map[string]Stereotype
	autowired   []string
	lazy        []string
	primary     []string
	qualifier   []string
	scope       []string
}

func newMarkerIndex(m Markers) markerIndex {
	idx := markerIndex{
		stereotypes: make(map[string]Stereotype, len(m.Stereotypes)),
		autowired:   m.Autowired,
		lazy:        m.Lazy,
		primary:     m.Primary,
		qualifier:   m.Qualifier,
		scope:       m.Scope,
	}
	for _, s := range m.Stereotypes {
		idx.stereotypes[s.Annotation] = s.Type
	}
	return idx
}
