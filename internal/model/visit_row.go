package model

// VisitRow mirrors the Parquet schema of a visit export. Money fields are
// float64 in major units matching the Parquet representation; they get
// converted to minor units during normalization.
type VisitRow struct {
	VisitID     *string `parquet:"visit_id,optional"`
	PatientName string  `parquet:"patient_name"`
	DoctorName  *string `parquet:"doctor_name,optional"`
	VisitDate   string  `parquet:"visit_date"`

	OPDFee        *float64 `parquet:"opd_fee,optional"`
	LABFee        *float64 `parquet:"lab_fee,optional"`
	OTFee         *float64 `parquet:"ot_fee,optional"`
	UltrasoundFee *float64 `parquet:"ultrasound_fee,optional"`
	ECGFee        *float64 `parquet:"ecg_fee,optional"`
}

// FeeValues returns the fee pointers indexed by Category.
func (r *VisitRow) FeeValues() [NumCategories]*float64 {
	return [NumCategories]*float64{
		OPD:        r.OPDFee,
		LAB:        r.LABFee,
		OT:         r.OTFee,
		Ultrasound: r.UltrasoundFee,
		ECG:        r.ECGFee,
	}
}

// RequiredVisitColumns lists the Parquet columns a visit file must carry.
var RequiredVisitColumns = []string{"patient_name", "visit_date"}
