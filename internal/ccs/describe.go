package ccs

import "fmt"

// Describe flattens a native value into a map suitable for MarshalCanonical
// and for JSON output. Keys are snake_case; every map carries "variant".
func Describe(v any) (map[string]any, error) {
	switch val := v.(type) {
	case Parameters:
		return describeParameters(val)
	case Coordinates:
		return describeCoordinates(val)
	case Accuracy:
		return describeAccuracy(val)
	default:
		return nil, fmt.Errorf("describe: unsupported type %T", v)
	}
}

func header(variant string, t CoordinateType) map[string]any {
	return map[string]any{
		"variant":         variant,
		"coordinate_type": t.String(),
	}
}

func describeParameters(p Parameters) (map[string]any, error) {
	m := header(p.Family().String(), p.CoordinateType())

	switch val := p.(type) {
	case TypeOnlyParameters:
	case GeodeticParameters:
		m["ellipsoid_code"] = val.EllipsoidCode
		m["height_type"] = val.HeightType.String()
	case MapProjection3Parameters:
		m["central_meridian"] = val.CentralMeridian
		m["false_easting"] = val.FalseEasting
		m["false_northing"] = val.FalseNorthing
	case MapProjection4Parameters:
		m["central_meridian"] = val.CentralMeridian
		m["origin_latitude"] = val.OriginLatitude
		m["false_easting"] = val.FalseEasting
		m["false_northing"] = val.FalseNorthing
	case MapProjection5Parameters:
		m["central_meridian"] = val.CentralMeridian
		m["origin_latitude"] = val.OriginLatitude
		m["scale_factor"] = val.ScaleFactor
		m["false_easting"] = val.FalseEasting
		m["false_northing"] = val.FalseNorthing
	case MapProjection6Parameters:
		m["central_meridian"] = val.CentralMeridian
		m["origin_latitude"] = val.OriginLatitude
		m["standard_parallel_1"] = val.StandardParallel1
		m["standard_parallel_2"] = val.StandardParallel2
		m["false_easting"] = val.FalseEasting
		m["false_northing"] = val.FalseNorthing
	case EquidistantCylindricalParameters:
		m["central_meridian"] = val.CentralMeridian
		m["standard_parallel"] = val.StandardParallel
		m["false_easting"] = val.FalseEasting
		m["false_northing"] = val.FalseNorthing
	case LocalCartesianParameters:
		m["longitude"] = val.Longitude
		m["latitude"] = val.Latitude
		m["height"] = val.Height
		m["orientation"] = val.Orientation
	case LocalSphericalParameters:
		m["longitude"] = val.Longitude
		m["latitude"] = val.Latitude
		m["height"] = val.Height
		m["orientation"] = val.Orientation
	case MercatorStandardParallelParameters:
		m["central_meridian"] = val.CentralMeridian
		m["standard_parallel"] = val.StandardParallel
		m["scale_factor"] = val.ScaleFactor
		m["false_easting"] = val.FalseEasting
		m["false_northing"] = val.FalseNorthing
	case MercatorScaleFactorParameters:
		m["central_meridian"] = val.CentralMeridian
		m["scale_factor"] = val.ScaleFactor
		m["false_easting"] = val.FalseEasting
		m["false_northing"] = val.FalseNorthing
	case NeysParameters:
		m["central_meridian"] = val.CentralMeridian
		m["origin_latitude"] = val.OriginLatitude
		m["standard_parallel_1"] = val.StandardParallel1
		m["false_easting"] = val.FalseEasting
		m["false_northing"] = val.FalseNorthing
	case ObliqueMercatorParameters:
		m["origin_latitude"] = val.OriginLatitude
		m["longitude_1"] = val.Longitude1
		m["latitude_1"] = val.Latitude1
		m["longitude_2"] = val.Longitude2
		m["latitude_2"] = val.Latitude2
		m["false_easting"] = val.FalseEasting
		m["false_northing"] = val.FalseNorthing
		m["scale_factor"] = val.ScaleFactor
	case PolarStereographicStandardParallelParameters:
		m["central_meridian"] = val.CentralMeridian
		m["standard_parallel"] = val.StandardParallel
		m["false_easting"] = val.FalseEasting
		m["false_northing"] = val.FalseNorthing
	case PolarStereographicScaleFactorParameters:
		m["central_meridian"] = val.CentralMeridian
		m["scale_factor"] = val.ScaleFactor
		m["hemisphere"] = val.Hemisphere.String()
		m["false_easting"] = val.FalseEasting
		m["false_northing"] = val.FalseNorthing
	case UTMParameters:
		m["zone"] = val.Zone
		m["override"] = val.Override
	default:
		return nil, fmt.Errorf("describe: unknown parameters variant %T", p)
	}
	return m, nil
}

func describeCoordinates(c Coordinates) (map[string]any, error) {
	m := header(c.Shape().String(), c.CoordinateType())
	if w := c.Warning(); w != "" {
		m["warning"] = w
	}

	switch val := c.(type) {
	case GeodeticCoordinates, CartesianCoordinates, MapProjectionCoordinates,
		SphericalCoordinates:
	case UTMCoordinates:
		m["zone"] = val.Zone
		m["hemisphere"] = val.Hemisphere.String()
	case UPSCoordinates:
		m["hemisphere"] = val.Hemisphere.String()
	case GridReferenceCoordinates:
		m["coordinate_string"] = val.CoordinateString
		m["precision"] = val.Precision
	default:
		return nil, fmt.Errorf("describe: unknown coordinates variant %T", c)
	}

	names := c.AxisNames()
	for i, v := range c.Components() {
		m[names[i]] = v
	}
	return m, nil
}

func describeAccuracy(a Accuracy) (map[string]any, error) {
	switch val := a.(type) {
	case CircularAccuracy:
		return map[string]any{
			"variant":           val.Shape().String(),
			"circular_error_90": val.CE90,
		}, nil
	case ThreeAxisAccuracy:
		return map[string]any{
			"variant":            val.Shape().String(),
			"circular_error_90":  val.CE90,
			"linear_error_90":    val.LE90,
			"spherical_error_90": val.SE90,
		}, nil
	default:
		return nil, fmt.Errorf("describe: unknown accuracy variant %T", a)
	}
}
