package bridge

import (
	"github.com/roach88/ccsbridge/internal/ccs"
	"github.com/roach88/ccsbridge/internal/managed"
)

// ParametersFromManaged reads a managed coordinate-system parameters object.
//
// obj must be an instance of CoordinateSystemParameters. The coordinateType
// discriminator is read first and selects the variant; only that variant's
// fields are read afterwards. A discriminator with no variant fails with
// CodeUnsupportedVariant. Any other class, or a field the variant needs but
// the object's class does not declare, fails with CodeBoundaryFault.
func ParametersFromManaged(env managed.Env, obj *managed.Object) (ccs.Parameters, error) {
	const op = OpParametersFromManaged
	if err := checkInput(env, obj, op); err != nil {
		return nil, err
	}
	if err := checkRoot(env, obj, op, ClassCoordinateSystemParameters); err != nil {
		return nil, err
	}

	r := newFieldReader(env, obj, op, CodeBoundaryFault)
	ct := ccs.CoordinateType(r.intField(FieldCoordinateType))
	if r.err != nil {
		return nil, r.err
	}
	family, ok := ccs.FamilyOf(ct)
	if !ok {
		return nil, newError(CodeUnsupportedVariant, op, r.class, FieldCoordinateType,
			"coordinate type %d has no parameters variant", int32(ct))
	}

	var p ccs.Parameters
	switch family {
	case ccs.FamilyTypeOnly:
		p = ccs.TypeOnlyParameters{Type: ct}
	case ccs.FamilyGeodetic:
		p = readGeodeticParameters(r)
	case ccs.FamilyMapProjection3:
		p = ccs.MapProjection3Parameters{
			Type:            ct,
			CentralMeridian: r.doubleField(FieldCentralMeridian),
			FalseEasting:    r.doubleField(FieldFalseEasting),
			FalseNorthing:   r.doubleField(FieldFalseNorthing),
		}
	case ccs.FamilyMapProjection4:
		p = ccs.MapProjection4Parameters{
			Type:            ct,
			CentralMeridian: r.doubleField(FieldCentralMeridian),
			OriginLatitude:  r.doubleField(FieldOriginLatitude),
			FalseEasting:    r.doubleField(FieldFalseEasting),
			FalseNorthing:   r.doubleField(FieldFalseNorthing),
		}
	case ccs.FamilyMapProjection5:
		p = ccs.MapProjection5Parameters{
			Type:            ct,
			CentralMeridian: r.doubleField(FieldCentralMeridian),
			OriginLatitude:  r.doubleField(FieldOriginLatitude),
			ScaleFactor:     r.doubleField(FieldScaleFactor),
			FalseEasting:    r.doubleField(FieldFalseEasting),
			FalseNorthing:   r.doubleField(FieldFalseNorthing),
		}
	case ccs.FamilyMapProjection6:
		p = ccs.MapProjection6Parameters{
			Type:              ct,
			CentralMeridian:   r.doubleField(FieldCentralMeridian),
			OriginLatitude:    r.doubleField(FieldOriginLatitude),
			StandardParallel1: r.doubleField(FieldStandardParallel1),
			StandardParallel2: r.doubleField(FieldStandardParallel2),
			FalseEasting:      r.doubleField(FieldFalseEasting),
			FalseNorthing:     r.doubleField(FieldFalseNorthing),
		}
	case ccs.FamilyEquidistantCylindrical:
		p = ccs.EquidistantCylindricalParameters{
			CentralMeridian:  r.doubleField(FieldCentralMeridian),
			StandardParallel: r.doubleField(FieldStandardParallel),
			FalseEasting:     r.doubleField(FieldFalseEasting),
			FalseNorthing:    r.doubleField(FieldFalseNorthing),
		}
	case ccs.FamilyLocalCartesian:
		p = ccs.LocalCartesianParameters{
			Longitude:   r.doubleField(FieldLongitude),
			Latitude:    r.doubleField(FieldLatitude),
			Height:      r.doubleField(FieldHeight),
			Orientation: r.doubleField(FieldOrientation),
		}
	case ccs.FamilyLocalSpherical:
		p = ccs.LocalSphericalParameters{
			Longitude:   r.doubleField(FieldLongitude),
			Latitude:    r.doubleField(FieldLatitude),
			Height:      r.doubleField(FieldHeight),
			Orientation: r.doubleField(FieldOrientation),
		}
	case ccs.FamilyMercatorStandardParallel:
		p = ccs.MercatorStandardParallelParameters{
			CentralMeridian:  r.doubleField(FieldCentralMeridian),
			StandardParallel: r.doubleField(FieldStandardParallel),
			ScaleFactor:      r.doubleField(FieldScaleFactor),
			FalseEasting:     r.doubleField(FieldFalseEasting),
			FalseNorthing:    r.doubleField(FieldFalseNorthing),
		}
	case ccs.FamilyMercatorScaleFactor:
		p = ccs.MercatorScaleFactorParameters{
			CentralMeridian: r.doubleField(FieldCentralMeridian),
			ScaleFactor:     r.doubleField(FieldScaleFactor),
			FalseEasting:    r.doubleField(FieldFalseEasting),
			FalseNorthing:   r.doubleField(FieldFalseNorthing),
		}
	case ccs.FamilyNeys:
		p = ccs.NeysParameters{
			CentralMeridian:   r.doubleField(FieldCentralMeridian),
			OriginLatitude:    r.doubleField(FieldOriginLatitude),
			StandardParallel1: r.doubleField(FieldStandardParallel1),
			FalseEasting:      r.doubleField(FieldFalseEasting),
			FalseNorthing:     r.doubleField(FieldFalseNorthing),
		}
	case ccs.FamilyObliqueMercator:
		p = ccs.ObliqueMercatorParameters{
			OriginLatitude: r.doubleField(FieldOriginLatitude),
			Longitude1:     r.doubleField(FieldLongitude1),
			Latitude1:      r.doubleField(FieldLatitude1),
			Longitude2:     r.doubleField(FieldLongitude2),
			Latitude2:      r.doubleField(FieldLatitude2),
			FalseEasting:   r.doubleField(FieldFalseEasting),
			FalseNorthing:  r.doubleField(FieldFalseNorthing),
			ScaleFactor:    r.doubleField(FieldScaleFactor),
		}
	case ccs.FamilyPolarStereographicStandardParallel:
		p = ccs.PolarStereographicStandardParallelParameters{
			CentralMeridian:  r.doubleField(FieldCentralMeridian),
			StandardParallel: r.doubleField(FieldStandardParallel),
			FalseEasting:     r.doubleField(FieldFalseEasting),
			FalseNorthing:    r.doubleField(FieldFalseNorthing),
		}
	case ccs.FamilyPolarStereographicScaleFactor:
		p = readPolarStereographicScaleFactorParameters(r)
	case ccs.FamilyUTM:
		p = ccs.UTMParameters{
			Zone:     r.longField(FieldZone),
			Override: r.longField(FieldOverride),
		}
	default:
		return nil, newError(CodeUnsupportedVariant, op, r.class, FieldCoordinateType,
			"no reader for %s", family)
	}

	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}

func readGeodeticParameters(r *fieldReader) ccs.Parameters {
	p := ccs.GeodeticParameters{
		EllipsoidCode: r.stringField(FieldEllipsoidCode),
		HeightType:    ccs.HeightType(r.intField(FieldHeightType)),
	}
	if r.err == nil && !p.HeightType.Valid() {
		r.fail(CodeBoundaryFault, FieldHeightType, "unknown height type "+p.HeightType.String(), nil)
	}
	return p
}

func readPolarStereographicScaleFactorParameters(r *fieldReader) ccs.Parameters {
	p := ccs.PolarStereographicScaleFactorParameters{
		CentralMeridian: r.doubleField(FieldCentralMeridian),
		ScaleFactor:     r.doubleField(FieldScaleFactor),
		Hemisphere:      ccs.Hemisphere(r.charField(FieldHemisphere)),
		FalseEasting:    r.doubleField(FieldFalseEasting),
		FalseNorthing:   r.doubleField(FieldFalseNorthing),
	}
	if r.err == nil && !p.Hemisphere.Valid() {
		r.fail(CodeBoundaryFault, FieldHemisphere, "hemisphere must be 'N' or 'S'", nil)
	}
	return p
}

// ParametersToManaged constructs a managed parameters object of the class
// matching p's variant.
func ParametersToManaged(env managed.Env, p ccs.Parameters) (*managed.Object, error) {
	const op = OpParametersToManaged
	if env == nil {
		return nil, newError(CodeBoundaryFault, op, "", "", "nil env")
	}
	if err := ccs.CheckParameters(p); err != nil {
		return nil, &TranslationError{Code: CodeUnsupportedVariant, Op: op, Message: err.Error()}
	}

	fields := map[string]managed.Value{
		FieldCoordinateType: managed.Int(p.CoordinateType()),
	}
	switch v := p.(type) {
	case ccs.TypeOnlyParameters:
	case ccs.GeodeticParameters:
		fields[FieldEllipsoidCode] = managed.String(v.EllipsoidCode)
		fields[FieldHeightType] = managed.Int(v.HeightType)
	case ccs.MapProjection3Parameters:
		fields[FieldCentralMeridian] = managed.Double(v.CentralMeridian)
		fields[FieldFalseEasting] = managed.Double(v.FalseEasting)
		fields[FieldFalseNorthing] = managed.Double(v.FalseNorthing)
	case ccs.MapProjection4Parameters:
		fields[FieldCentralMeridian] = managed.Double(v.CentralMeridian)
		fields[FieldOriginLatitude] = managed.Double(v.OriginLatitude)
		fields[FieldFalseEasting] = managed.Double(v.FalseEasting)
		fields[FieldFalseNorthing] = managed.Double(v.FalseNorthing)
	case ccs.MapProjection5Parameters:
		fields[FieldCentralMeridian] = managed.Double(v.CentralMeridian)
		fields[FieldOriginLatitude] = managed.Double(v.OriginLatitude)
		fields[FieldScaleFactor] = managed.Double(v.ScaleFactor)
		fields[FieldFalseEasting] = managed.Double(v.FalseEasting)
		fields[FieldFalseNorthing] = managed.Double(v.FalseNorthing)
	case ccs.MapProjection6Parameters:
		fields[FieldCentralMeridian] = managed.Double(v.CentralMeridian)
		fields[FieldOriginLatitude] = managed.Double(v.OriginLatitude)
		fields[FieldStandardParallel1] = managed.Double(v.StandardParallel1)
		fields[FieldStandardParallel2] = managed.Double(v.StandardParallel2)
		fields[FieldFalseEasting] = managed.Double(v.FalseEasting)
		fields[FieldFalseNorthing] = managed.Double(v.FalseNorthing)
	case ccs.EquidistantCylindricalParameters:
		fields[FieldCentralMeridian] = managed.Double(v.CentralMeridian)
		fields[FieldStandardParallel] = managed.Double(v.StandardParallel)
		fields[FieldFalseEasting] = managed.Double(v.FalseEasting)
		fields[FieldFalseNorthing] = managed.Double(v.FalseNorthing)
	case ccs.LocalCartesianParameters:
		fields[FieldLongitude] = managed.Double(v.Longitude)
		fields[FieldLatitude] = managed.Double(v.Latitude)
		fields[FieldHeight] = managed.Double(v.Height)
		fields[FieldOrientation] = managed.Double(v.Orientation)
	case ccs.LocalSphericalParameters:
		fields[FieldLongitude] = managed.Double(v.Longitude)
		fields[FieldLatitude] = managed.Double(v.Latitude)
		fields[FieldHeight] = managed.Double(v.Height)
		fields[FieldOrientation] = managed.Double(v.Orientation)
	case ccs.MercatorStandardParallelParameters:
		fields[FieldCentralMeridian] = managed.Double(v.CentralMeridian)
		fields[FieldStandardParallel] = managed.Double(v.StandardParallel)
		fields[FieldScaleFactor] = managed.Double(v.ScaleFactor)
		fields[FieldFalseEasting] = managed.Double(v.FalseEasting)
		fields[FieldFalseNorthing] = managed.Double(v.FalseNorthing)
	case ccs.MercatorScaleFactorParameters:
		fields[FieldCentralMeridian] = managed.Double(v.CentralMeridian)
		fields[FieldScaleFactor] = managed.Double(v.ScaleFactor)
		fields[FieldFalseEasting] = managed.Double(v.FalseEasting)
		fields[FieldFalseNorthing] = managed.Double(v.FalseNorthing)
	case ccs.NeysParameters:
		fields[FieldCentralMeridian] = managed.Double(v.CentralMeridian)
		fields[FieldOriginLatitude] = managed.Double(v.OriginLatitude)
		fields[FieldStandardParallel1] = managed.Double(v.StandardParallel1)
		fields[FieldFalseEasting] = managed.Double(v.FalseEasting)
		fields[FieldFalseNorthing] = managed.Double(v.FalseNorthing)
	case ccs.ObliqueMercatorParameters:
		fields[FieldOriginLatitude] = managed.Double(v.OriginLatitude)
		fields[FieldLongitude1] = managed.Double(v.Longitude1)
		fields[FieldLatitude1] = managed.Double(v.Latitude1)
		fields[FieldLongitude2] = managed.Double(v.Longitude2)
		fields[FieldLatitude2] = managed.Double(v.Latitude2)
		fields[FieldFalseEasting] = managed.Double(v.FalseEasting)
		fields[FieldFalseNorthing] = managed.Double(v.FalseNorthing)
		fields[FieldScaleFactor] = managed.Double(v.ScaleFactor)
	case ccs.PolarStereographicStandardParallelParameters:
		fields[FieldCentralMeridian] = managed.Double(v.CentralMeridian)
		fields[FieldStandardParallel] = managed.Double(v.StandardParallel)
		fields[FieldFalseEasting] = managed.Double(v.FalseEasting)
		fields[FieldFalseNorthing] = managed.Double(v.FalseNorthing)
	case ccs.PolarStereographicScaleFactorParameters:
		fields[FieldCentralMeridian] = managed.Double(v.CentralMeridian)
		fields[FieldScaleFactor] = managed.Double(v.ScaleFactor)
		fields[FieldHemisphere] = managed.Char(v.Hemisphere)
		fields[FieldFalseEasting] = managed.Double(v.FalseEasting)
		fields[FieldFalseNorthing] = managed.Double(v.FalseNorthing)
	case ccs.UTMParameters:
		fields[FieldZone] = managed.Long(v.Zone)
		fields[FieldOverride] = managed.Long(v.Override)
	default:
		return nil, newError(CodeUnsupportedVariant, op, "", "", "unsupported parameters type %T", p)
	}

	className, _ := ParametersClass(p.Family())
	return construct(env, op, className, fields)
}
