package entity

// Dialect names the SQL flavour of the configured engine.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DefaultSQLQuery is the query the console starts with.
const DefaultSQLQuery = "SELECT * FROM patients LIMIT 10;"

// ItemsPerPage is the records table page size.
const ItemsPerPage = 10

// AnalyticsQuery is one entry of the dashboard battery.
type AnalyticsQuery struct {
	ID    string
	Name  string
	Query string
}

// Dashboard query identifiers
const (
	AnalyticsTotalPatients       = "total_patients"
	AnalyticsRecentRegistrations = "recent_registrations"
	AnalyticsPatientsByGender    = "patients_by_gender"
	AnalyticsPatientsByAge       = "patients_by_age"
	AnalyticsInsuranceStatus     = "insurance_status"
	AnalyticsMissingInfo         = "missing_info"
	AnalyticsLanguagePreference  = "language_preference"
	AnalyticsCommonBloodType     = "common_blood_type"
	AnalyticsMonthlyRegistration = "monthly_registration"
)

// dateExpr holds the dialect specific fragments used by the catalog.
type dateExpr struct {
	recent30     string
	age          string
	last7        string
	last12Months string
	month        string
	day          string
}

var dateExprs = map[Dialect]dateExpr{
	DialectSQLite: {
		recent30:     "date(registration_date) >= date('now', '-30 days')",
		age:          "(CAST(strftime('%Y', 'now') AS INTEGER) - CAST(strftime('%Y', date_of_birth) AS INTEGER)) - (strftime('%m-%d', 'now') < strftime('%m-%d', date_of_birth))",
		last7:        "date(registration_date) >= date('now', '-6 days')",
		last12Months: "date(registration_date) >= date('now', 'start of month', '-11 months')",
		month:        "strftime('%Y-%m', registration_date)",
		day:          "date(registration_date)",
	},
	DialectPostgres: {
		recent30:     "TO_DATE(registration_date, 'YYYY-MM-DD') >= CURRENT_DATE - INTERVAL '30 days'",
		age:          "EXTRACT(YEAR FROM AGE(TO_DATE(date_of_birth, 'YYYY-MM-DD')))",
		last7:        "TO_DATE(registration_date, 'YYYY-MM-DD') >= CURRENT_DATE - INTERVAL '6 days'",
		last12Months: "TO_DATE(registration_date, 'YYYY-MM-DD') >= DATE_TRUNC('month', CURRENT_DATE) - INTERVAL '11 months'",
		month:        "TO_CHAR(TO_DATE(registration_date, 'YYYY-MM-DD'), 'YYYY-MM')",
		day:          "TO_DATE(registration_date, 'YYYY-MM-DD')",
	},
}

func exprsFor(d Dialect) dateExpr {
	if e, ok := dateExprs[d]; ok {
		return e
	}
	return dateExprs[DialectSQLite]
}

func ageGroupQuery(e dateExpr, onlyKnownDOB bool) string {
	where := ""
	if onlyKnownDOB {
		where = " WHERE date_of_birth IS NOT NULL"
	}
	return "SELECT CASE WHEN age < 18 THEN '0-17' WHEN age BETWEEN 18 AND 35 THEN '18-35' WHEN age BETWEEN 36 AND 50 THEN '36-50' WHEN age BETWEEN 51 AND 65 THEN '51-65' ELSE '66+' END AS age_group, COUNT(*) AS count FROM (SELECT " +
		e.age + " AS age FROM patients" + where + ") AS derived GROUP BY age_group ORDER BY age_group;"
}

// DefaultQueries returns the console's built-in saved queries.
func DefaultQueries(d Dialect) []SavedQuery {
	e := exprsFor(d)
	return []SavedQuery{
		{Name: "Total number of patients", Query: "SELECT COUNT(*) AS total_patients FROM patients;"},
		{Name: "New patients in the last 30 days", Query: "SELECT COUNT(*) AS recent_patients FROM patients WHERE " + e.recent30 + ";"},
		{Name: "Patients by gender distribution", Query: "SELECT gender, COUNT(*) AS count FROM patients GROUP BY gender ORDER BY count DESC;"},
		{Name: "Patients by age group", Query: ageGroupQuery(e, true)},
		{Name: "Insurance coverage breakdown", Query: "SELECT CASE WHEN insurance_provider IS NULL OR insurance_provider = '' THEN 'Uninsured' ELSE 'Insured' END AS insurance_status, COUNT(*) AS count FROM patients GROUP BY insurance_status;"},
		{Name: "Daily registrations (last 7 days)", Query: "SELECT " + e.day + " AS date, COUNT(*) AS registrations FROM patients WHERE " + e.last7 + " GROUP BY date ORDER BY date;"},
		{Name: "Top 5 insurance providers", Query: "SELECT insurance_provider, COUNT(*) AS count FROM patients WHERE insurance_provider IS NOT NULL AND insurance_provider <> '' GROUP BY insurance_provider ORDER BY count DESC LIMIT 5;"},
		{Name: "Monthly registration trend (last 12 months)", Query: "SELECT " + e.month + " AS month, COUNT(*) AS registrations FROM patients WHERE " + e.last12Months + " GROUP BY month ORDER BY month;"},
		{Name: "Patients with incomplete contact information", Query: "SELECT COUNT(*) AS count FROM patients WHERE (email IS NULL OR email = '') OR (phone IS NULL OR phone = '');"},
		{Name: "Most common blood types", Query: "SELECT blood_type, COUNT(*) AS count FROM patients WHERE blood_type IS NOT NULL AND blood_type <> '' GROUP BY blood_type ORDER BY count DESC;"},
		{Name: "Language preferences distribution", Query: "SELECT language_preference, COUNT(*) AS count FROM patients WHERE language_preference IS NOT NULL AND language_preference <> '' GROUP BY language_preference ORDER BY count DESC;"},
		{Name: "Patients with emergency contact info", Query: "SELECT CASE WHEN emergency_contact IS NULL OR emergency_contact = '' THEN 'No Emergency Contact' ELSE 'Has Emergency Contact' END AS emergency_contact_status, COUNT(*) AS count FROM patients GROUP BY emergency_contact_status;"},
	}
}

// DashboardQueries returns the fixed analytics battery run by the dashboard.
func DashboardQueries(d Dialect) []AnalyticsQuery {
	e := exprsFor(d)
	return []AnalyticsQuery{
		{ID: AnalyticsTotalPatients, Name: "Total number of patients", Query: "SELECT COUNT(*) AS total_patients FROM patients;"},
		{ID: AnalyticsRecentRegistrations, Name: "Patients registered in the last 30 days", Query: "SELECT COUNT(*) AS recent_registrations FROM patients WHERE " + e.recent30 + ";"},
		{ID: AnalyticsPatientsByGender, Name: "Patients by gender", Query: "SELECT gender, COUNT(*) AS count FROM patients GROUP BY gender;"},
		{ID: AnalyticsPatientsByAge, Name: "Patients by age group", Query: ageGroupQuery(e, false)},
		{ID: AnalyticsInsuranceStatus, Name: "Patients with insurance vs without", Query: "SELECT COUNT(*) AS insurance_status FROM patients WHERE insurance_provider IS NOT NULL AND insurance_number IS NOT NULL;"},
		{ID: AnalyticsMissingInfo, Name: "Patients with missing contact info", Query: "SELECT COUNT(*) AS missing_info FROM patients WHERE (email IS NULL OR email = '') OR (phone IS NULL OR phone = '');"},
		{ID: AnalyticsLanguagePreference, Name: "Patient's language preferences distribution", Query: "SELECT language_preference, COUNT(*) AS count FROM patients WHERE language_preference IS NOT NULL AND language_preference <> '' GROUP BY language_preference ORDER BY count DESC;"},
		{ID: AnalyticsCommonBloodType, Name: "Most common blood types", Query: "SELECT blood_type, COUNT(*) AS count FROM patients WHERE blood_type IS NOT NULL AND blood_type != 'Unknown' AND blood_type <> '' GROUP BY blood_type ORDER BY count DESC;"},
		{ID: AnalyticsMonthlyRegistration, Name: "Monthly registration trend (last 12 months)", Query: "SELECT " + e.month + " AS month, COUNT(*) AS count FROM patients WHERE " + e.last12Months + " GROUP BY month ORDER BY month;"},
	}
}
