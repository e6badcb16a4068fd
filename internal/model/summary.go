package model

import "time"

// LoadSummary captures metrics from a single visit file load.
type LoadSummary struct {
	FilePath       string
	FileSHA256     string
	LoadID         int64
	LoadBatchID    string
	AlreadyLoaded  bool
	RowsRead       int64
	RowsLoaded     int64
	RowsRejected   int64
	DoctorsMatched int64
	DurationStage  time.Duration
	DurationTotal  time.Duration
}

// SummaryRow is one exported summary line: a doctor, the unattributed
// bucket, or the grand total over a reporting window.
type SummaryRow struct {
	Kind       string `parquet:"kind"` // "doctor", "unattributed" or "grand"
	WindowFrom string `parquet:"window_from"`
	WindowTo   string `parquet:"window_to"`
	DoctorID   string `parquet:"doctor_id,optional"`
	DoctorName string `parquet:"doctor_name,optional"`
	Visits     int64  `parquet:"visits"`

	FeeTotal      int64 `parquet:"fee_total_minor"`
	DoctorTotal   int64 `parquet:"doctor_total_minor"`
	HospitalTotal int64 `parquet:"hospital_total_minor"`

	OPDFee        int64 `parquet:"opd_fee_minor"`
	OPDDoctor     int64 `parquet:"opd_doctor_minor"`
	LABFee        int64 `parquet:"lab_fee_minor"`
	LABDoctor     int64 `parquet:"lab_doctor_minor"`
	OTFee         int64 `parquet:"ot_fee_minor"`
	OTDoctor      int64 `parquet:"ot_doctor_minor"`
	UltrasoundFee int64 `parquet:"ultrasound_fee_minor"`
	UltrasoundDoc int64 `parquet:"ultrasound_doctor_minor"`
	ECGFee        int64 `parquet:"ecg_fee_minor"`
	ECGDoctor     int64 `parquet:"ecg_doctor_minor"`
}

// SetCategories fills the per-category columns from fee and doctor amounts.
func (r *SummaryRow) SetCategories(fees, doctor Amounts) {
	r.OPDFee, r.OPDDoctor = fees[OPD], doctor[OPD]
	r.LABFee, r.LABDoctor = fees[LAB], doctor[LAB]
	r.OTFee, r.OTDoctor = fees[OT], doctor[OT]
	r.UltrasoundFee, r.UltrasoundDoc = fees[Ultrasound], doctor[Ultrasound]
	r.ECGFee, r.ECGDoctor = fees[ECG], doctor[ECG]
}
