package rules

import "preflight/internal/records"

// BuiltinDefinitions is the full pre-submission rule set, one entry per code
// the evaluators can raise. The seeding job loads these into the library
// table; the StaticStore serves them directly in development and tests.
func BuiltinDefinitions() []Definition {
	var defs []Definition
	defs = append(defs, studentDefinitions()...)
	defs = append(defs, courseDefinitions()...)
	defs = append(defs, unitDefinitions()...)
	defs = append(defs, staffDefinitions()...)
	defs = append(defs, providerDefinitions()...)
	defs = append(defs, unitAttemptDefinitions()...)
	return defs
}

func studentDefinitions() []Definition {
	const ft = records.EntityStudent
	return []Definition{
		{Code: "TCSI_STUDENT_MANDATORY_001", FileType: ft, Category: CategoryMandatory, FieldName: "chessn",
			Description:        "CHESSN is required",
			ResolutionGuidance: "Enter a valid 10-digit CHESSN for the student.",
			ExampleValue:       "1234567890", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_MANDATORY_002", FileType: ft, Category: CategoryMandatory, FieldName: "last_name",
			Description:        "Family name (surname/last name) is required",
			ResolutionGuidance: "Enter the student's family name as it appears on official documents.",
			ExampleValue:       "Smith", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_MANDATORY_003", FileType: ft, Category: CategoryMandatory, FieldName: "first_name",
			Description:        "Given name (first name) is required",
			ResolutionGuidance: "Enter the student's given name.",
			ExampleValue:       "John", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_MANDATORY_004", FileType: ft, Category: CategoryMandatory, FieldName: "date_of_birth",
			Description:        "Date of birth is required",
			ResolutionGuidance: "Enter the student's date of birth in YYYY-MM-DD format.",
			ExampleValue:       "2000-01-15", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_MANDATORY_005", FileType: ft, Category: CategoryMandatory, FieldName: "gender",
			Description:        "Gender is required",
			ResolutionGuidance: "Enter the student's gender code (M, F or X).",
			ExampleValue:       "F", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_MANDATORY_006", FileType: ft, Category: CategoryMandatory, FieldName: "country_of_birth",
			Description:        "Country of birth is required",
			ResolutionGuidance: "Enter the student's country of birth code.",
			ExampleValue:       "1101", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_MANDATORY_007", FileType: ft, Category: CategoryMandatory, FieldName: "indigenous_status",
			Description:        "Indigenous status is required",
			ResolutionGuidance: "Enter the student's indigenous status code.",
			ExampleValue:       "2", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_MANDATORY_008", FileType: ft, Category: CategoryMandatory, FieldName: "citizenship_status",
			Description:        "Citizenship status is required",
			ResolutionGuidance: "Enter the student's citizenship status code (A, P, I or T).",
			ExampleValue:       "A", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_MANDATORY_009", FileType: ft, Category: CategoryMandatory, FieldName: "residential_postcode",
			Description:        "Residential postcode is required for domestic and temporary-resident students",
			ResolutionGuidance: "Enter the student's 4-digit residential postcode.",
			ExampleValue:       "2000", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_MANDATORY_010", FileType: ft, Category: CategoryMandatory, FieldName: "highest_education_level",
			Description:        "Highest prior education level is required",
			ResolutionGuidance: "Enter the student's highest prior education attainment code.",
			ExampleValue:       "008", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_MANDATORY_011", FileType: ft, Category: CategoryMandatory, FieldName: "course_code",
			Description:        "Course code is required",
			ResolutionGuidance: "Link the student to the course they are enrolled in.",
			ExampleValue:       "BACH001", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_MANDATORY_012", FileType: ft, Category: CategoryMandatory, FieldName: "commencement_date",
			Description:        "Commencement date is required",
			ResolutionGuidance: "Enter the date the student commenced their course in YYYY-MM-DD format.",
			ExampleValue:       "2024-02-26", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_MANDATORY_013", FileType: ft, Category: CategoryMandatory, FieldName: "study_mode",
			Description:        "Study mode is required",
			ResolutionGuidance: "Enter the study mode code (F, P or E).",
			ExampleValue:       "F", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_MANDATORY_014", FileType: ft, Category: CategoryMandatory, FieldName: "attendance_type",
			Description:        "Attendance type is required",
			ResolutionGuidance: "Enter the attendance type code (I, E, M or O).",
			ExampleValue:       "I", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_MANDATORY_015", FileType: ft, Category: CategoryMandatory, FieldName: "basis_for_admission",
			Description:        "Basis for admission is required",
			ResolutionGuidance: "Enter the basis for admission code.",
			ExampleValue:       "31", DefaultSeverity: SeverityError},

		{Code: "TCSI_STUDENT_FORMAT_101", FileType: ft, Category: CategoryFormat, FieldName: "chessn",
			Description:        "CHESSN must be exactly 10 digits",
			ResolutionGuidance: "CHESSN must be a 10-digit number with no spaces or special characters.",
			ExampleValue:       "1234567890", DefaultSeverity: SeverityError,
			AutoFixable:        true, FixFunction: "padChessn"},
		{Code: "TCSI_STUDENT_FORMAT_102", FileType: ft, Category: CategoryFormat, FieldName: "date_of_birth",
			Description:        "Date of birth must be in YYYY-MM-DD format",
			ResolutionGuidance: "Correct the date format to YYYY-MM-DD (e.g., 2000-01-15).",
			ExampleValue:       "2000-01-15", DefaultSeverity: SeverityError,
			AutoFixable:        true, FixFunction: "fixDateFormat"},
		{Code: "TCSI_STUDENT_FORMAT_103", FileType: ft, Category: CategoryFormat, FieldName: "commencement_date",
			Description:        "Commencement date must be in YYYY-MM-DD format",
			ResolutionGuidance: "Correct the date format to YYYY-MM-DD (e.g., 2024-02-26).",
			ExampleValue:       "2024-02-26", DefaultSeverity: SeverityError,
			AutoFixable:        true, FixFunction: "fixDateFormat"},
		{Code: "TCSI_STUDENT_FORMAT_104", FileType: ft, Category: CategoryFormat, FieldName: "email",
			Description:        "Email address is not well-formed",
			ResolutionGuidance: "Correct the email address (e.g., student@example.edu.au).",
			ExampleValue:       "student@example.edu.au", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_FORMAT_105", FileType: ft, Category: CategoryFormat, FieldName: "phone",
			Description:        "Phone number must be 10 digits starting with 0",
			ResolutionGuidance: "Enter the phone number in local 10-digit form (e.g., 0412345678).",
			ExampleValue:       "0412345678", DefaultSeverity: SeverityError,
			AutoFixable:        true, FixFunction: "fixPhoneFormat"},
		{Code: "TCSI_STUDENT_FORMAT_106", FileType: ft, Category: CategoryFormat, FieldName: "residential_postcode",
			Description:        "Residential postcode must be exactly 4 digits",
			ResolutionGuidance: "Enter a 4-digit postcode, padding with leading zeros if needed.",
			ExampleValue:       "0800", DefaultSeverity: SeverityError,
			AutoFixable:        true, FixFunction: "padPostcode"},
		{Code: "TCSI_STUDENT_FORMAT_107", FileType: ft, Category: CategoryFormat, FieldName: "eftsl",
			Description:        "EFTSL must be a number between 0.01 and 1.0",
			ResolutionGuidance: "Enter the equivalent full-time study load as a decimal between 0.01 and 1.0.",
			ExampleValue:       "0.5", DefaultSeverity: SeverityError},

		{Code: "TCSI_STUDENT_REFERENCE_301", FileType: ft, Category: CategoryReferenceData, FieldName: "gender",
			Description:        "Invalid gender code",
			ResolutionGuidance: "Use a valid gender code: M, F or X.",
			ExampleValue:       "M", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_REFERENCE_303", FileType: ft, Category: CategoryReferenceData, FieldName: "indigenous_status",
			Description:        "Invalid indigenous status code",
			ResolutionGuidance: "Use a valid indigenous status code: 1, 2, 3 or 4.",
			ExampleValue:       "2", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_REFERENCE_304", FileType: ft, Category: CategoryReferenceData, FieldName: "citizenship_status",
			Description:        "Invalid citizenship status code",
			ResolutionGuidance: "Use a valid citizenship status code: A, P, I or T.",
			ExampleValue:       "A", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_REFERENCE_306", FileType: ft, Category: CategoryReferenceData, FieldName: "course_code",
			Description:        "Course code does not match an existing course",
			ResolutionGuidance: "Create the course record first, or correct the student's course code.",
			ExampleValue:       "BACH001", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_REFERENCE_307", FileType: ft, Category: CategoryReferenceData, FieldName: "study_mode",
			Description:        "Invalid study mode code",
			ResolutionGuidance: "Use a valid study mode code: F (full-time), P (part-time) or E (external).",
			ExampleValue:       "F", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_REFERENCE_308", FileType: ft, Category: CategoryReferenceData, FieldName: "attendance_type",
			Description:        "Invalid attendance type code",
			ResolutionGuidance: "Use a valid attendance type code: I, E, M or O.",
			ExampleValue:       "I", DefaultSeverity: SeverityError},

		{Code: "TCSI_STUDENT_BUSINESS_201", FileType: ft, Category: CategoryBusinessRule, FieldName: "date_of_birth",
			Description:        "Student must be at least 15 years old",
			ResolutionGuidance: "Check the date of birth; students under 15 cannot be reported in this collection.",
			ExampleValue:       "2000-01-15", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_BUSINESS_202", FileType: ft, Category: CategoryBusinessRule, FieldName: "date_of_birth",
			Description:        "Date of birth cannot be in the future",
			ResolutionGuidance: "Correct the date of birth.",
			ExampleValue:       "2000-01-15", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_BUSINESS_203", FileType: ft, Category: CategoryBusinessRule, FieldName: "commencement_date",
			Description:        "Commencement date cannot precede date of birth",
			ResolutionGuidance: "Check both dates; the commencement date must be after the student was born.",
			ExampleValue:       "2024-02-26", DefaultSeverity: SeverityError},
		{Code: "TCSI_STUDENT_BUSINESS_205", FileType: ft, Category: CategoryBusinessRule, FieldName: "study_mode",
			Description:        "Full-time student with EFTSL below 0.75",
			ResolutionGuidance: "Check the study mode; full-time students normally carry an EFTSL of at least 0.75.",
			ExampleValue:       "F", DefaultSeverity: SeverityWarning},
		{Code: "TCSI_STUDENT_BUSINESS_206", FileType: ft, Category: CategoryBusinessRule, FieldName: "eftsl",
			Description:        "EFTSL above 1.0",
			ResolutionGuidance: "Check the study load; an EFTSL above 1.0 indicates a data entry error.",
			ExampleValue:       "1.0", DefaultSeverity: SeverityWarning},
		{Code: "TCSI_STUDENT_BUSINESS_207", FileType: ft, Category: CategoryBusinessRule, FieldName: "citizenship_status",
			Description:        "International student cannot be Commonwealth supported",
			ResolutionGuidance: "Correct the citizenship status or remove the Commonwealth supported flag.",
			ExampleValue:       "I", DefaultSeverity: SeverityError},
	}
}

func courseDefinitions() []Definition {
	const ft = records.EntityCourse
	return []Definition{
		{Code: "TCSI_COURSE_MANDATORY_001", FileType: ft, Category: CategoryMandatory, FieldName: "course_code",
			Description:        "Course code is required",
			ResolutionGuidance: "Provide a unique course code identifier.",
			ExampleValue:       "BACH001", DefaultSeverity: SeverityError},
		{Code: "TCSI_COURSE_MANDATORY_002", FileType: ft, Category: CategoryMandatory, FieldName: "course_name",
			Description:        "Course name is required",
			ResolutionGuidance: "Provide the full course title.",
			ExampleValue:       "Bachelor of Computing", DefaultSeverity: SeverityError},
		{Code: "TCSI_COURSE_MANDATORY_003", FileType: ft, Category: CategoryMandatory, FieldName: "qualification_level",
			Description:        "Qualification level is required",
			ResolutionGuidance: "Provide the qualification level code.",
			ExampleValue:       "080", DefaultSeverity: SeverityError},
		{Code: "TCSI_COURSE_MANDATORY_004", FileType: ft, Category: CategoryMandatory, FieldName: "field_of_education",
			Description:        "Field of education is required",
			ResolutionGuidance: "Provide the 6-digit field of education (ASCED) code.",
			ExampleValue:       "020103", DefaultSeverity: SeverityError},
		{Code: "TCSI_COURSE_MANDATORY_005", FileType: ft, Category: CategoryMandatory, FieldName: "course_duration",
			Description:        "Course duration is required",
			ResolutionGuidance: "Provide the course duration in years.",
			ExampleValue:       "3.0", DefaultSeverity: SeverityError},
		{Code: "TCSI_COURSE_MANDATORY_006", FileType: ft, Category: CategoryMandatory, FieldName: "total_eftsl",
			Description:        "Total EFTSL is required",
			ResolutionGuidance: "Provide the total equivalent full-time study load for the course.",
			ExampleValue:       "3.0", DefaultSeverity: SeverityError},

		{Code: "TCSI_COURSE_FORMAT_101", FileType: ft, Category: CategoryFormat, FieldName: "course_code",
			Description:        "Course code may only contain letters, digits and hyphens",
			ResolutionGuidance: "Remove spaces and special characters from the course code.",
			ExampleValue:       "BACH-001", DefaultSeverity: SeverityError,
			AutoFixable:        true, FixFunction: "sanitizeCourseCode"},
		{Code: "TCSI_COURSE_FORMAT_102", FileType: ft, Category: CategoryFormat, FieldName: "field_of_education",
			Description:        "Field of education must be exactly 6 digits",
			ResolutionGuidance: "Enter the 6-digit ASCED code, padding with leading zeros if needed.",
			ExampleValue:       "020103", DefaultSeverity: SeverityError,
			AutoFixable:        true, FixFunction: "padAscedCode"},
		{Code: "TCSI_COURSE_FORMAT_103", FileType: ft, Category: CategoryFormat, FieldName: "course_duration",
			Description:        "Course duration must be a number between 0.25 and 10.0",
			ResolutionGuidance: "Enter the duration in years as a decimal between 0.25 and 10.0.",
			ExampleValue:       "3.0", DefaultSeverity: SeverityError},

		{Code: "TCSI_COURSE_REFERENCE_301", FileType: ft, Category: CategoryReferenceData, FieldName: "qualification_level",
			Description:        "Invalid qualification level code",
			ResolutionGuidance: "Use a valid qualification level code between 020 and 100.",
			ExampleValue:       "080", DefaultSeverity: SeverityError},
		{Code: "TCSI_COURSE_REFERENCE_303", FileType: ft, Category: CategoryReferenceData, FieldName: "attendance_mode",
			Description:        "Invalid attendance mode code",
			ResolutionGuidance: "Use a valid attendance mode code: I, E, M or O.",
			ExampleValue:       "I", DefaultSeverity: SeverityError},

		{Code: "TCSI_COURSE_BUSINESS_201", FileType: ft, Category: CategoryBusinessRule, FieldName: "course_code",
			Description:        "Course code must be unique",
			ResolutionGuidance: "Another course already uses this code; choose a different code or merge the records.",
			ExampleValue:       "BACH001", DefaultSeverity: SeverityError},
		{Code: "TCSI_COURSE_BUSINESS_202", FileType: ft, Category: CategoryBusinessRule, FieldName: "course_end_date",
			Description:        "Course end date cannot precede the start date",
			ResolutionGuidance: "Check both dates; the end date must be on or after the start date.",
			ExampleValue:       "2026-12-31", DefaultSeverity: SeverityError},
	}
}

func unitDefinitions() []Definition {
	const ft = records.EntityUnit
	return []Definition{
		{Code: "TCSI_UNIT_MANDATORY_001", FileType: ft, Category: CategoryMandatory, FieldName: "unit_code",
			Description:        "Unit code is required",
			ResolutionGuidance: "Provide a unique unit/subject code.",
			ExampleValue:       "COMP101", DefaultSeverity: SeverityError},
		{Code: "TCSI_UNIT_MANDATORY_002", FileType: ft, Category: CategoryMandatory, FieldName: "unit_name",
			Description:        "Unit name is required",
			ResolutionGuidance: "Provide the full unit title.",
			ExampleValue:       "Introduction to Programming", DefaultSeverity: SeverityError},
		{Code: "TCSI_UNIT_MANDATORY_003", FileType: ft, Category: CategoryMandatory, FieldName: "credit_points",
			Description:        "Credit points are required",
			ResolutionGuidance: "Provide the unit's credit point value.",
			ExampleValue:       "6", DefaultSeverity: SeverityError},
		{Code: "TCSI_UNIT_MANDATORY_004", FileType: ft, Category: CategoryMandatory, FieldName: "unit_level",
			Description:        "Unit level is required",
			ResolutionGuidance: "Provide the unit's study level.",
			ExampleValue:       "1", DefaultSeverity: SeverityError},
		{Code: "TCSI_UNIT_MANDATORY_005", FileType: ft, Category: CategoryMandatory, FieldName: "field_of_education",
			Description:        "Field of education is required",
			ResolutionGuidance: "Provide the 6-digit field of education (ASCED) code.",
			ExampleValue:       "020103", DefaultSeverity: SeverityError},

		{Code: "TCSI_UNIT_FORMAT_101", FileType: ft, Category: CategoryFormat, FieldName: "unit_code",
			Description:        "Unit code may only contain letters, digits and hyphens",
			ResolutionGuidance: "Remove spaces and special characters from the unit code.",
			ExampleValue:       "COMP-101", DefaultSeverity: SeverityError,
			AutoFixable:        true, FixFunction: "sanitizeUnitCode"},
		{Code: "TCSI_UNIT_FORMAT_102", FileType: ft, Category: CategoryFormat, FieldName: "credit_points",
			Description:        "Credit points must be a number between 3 and 50",
			ResolutionGuidance: "Enter the credit points as a whole number between 3 and 50.",
			ExampleValue:       "6", DefaultSeverity: SeverityError},

		{Code: "TCSI_UNIT_BUSINESS_201", FileType: ft, Category: CategoryBusinessRule, FieldName: "unit_code",
			Description:        "Unit code must be unique",
			ResolutionGuidance: "Another unit already uses this code; choose a different code or merge the records.",
			ExampleValue:       "COMP101", DefaultSeverity: SeverityError},
	}
}

func staffDefinitions() []Definition {
	const ft = records.EntityStaff
	return []Definition{
		{Code: "TCSI_STAFF_MANDATORY_001", FileType: ft, Category: CategoryMandatory, FieldName: "staff_identifier",
			Description:        "Staff identifier is required",
			ResolutionGuidance: "Provide a unique staff identifier.",
			ExampleValue:       "1234567890", DefaultSeverity: SeverityError},
		{Code: "TCSI_STAFF_MANDATORY_002", FileType: ft, Category: CategoryMandatory, FieldName: "employment_start_date",
			Description:        "Employment start date is required",
			ResolutionGuidance: "Provide the employment start date in YYYY-MM-DD format.",
			ExampleValue:       "2020-01-06", DefaultSeverity: SeverityError},
		{Code: "TCSI_STAFF_MANDATORY_003", FileType: ft, Category: CategoryMandatory, FieldName: "position_classification",
			Description:        "Position classification is required",
			ResolutionGuidance: "Provide the staff member's position classification.",
			ExampleValue:       "Lecturer B", DefaultSeverity: SeverityError},
		{Code: "TCSI_STAFF_MANDATORY_004", FileType: ft, Category: CategoryMandatory, FieldName: "fte",
			Description:        "FTE is required",
			ResolutionGuidance: "Provide the full-time-equivalent fraction (0.01 to 1.0).",
			ExampleValue:       "1.0", DefaultSeverity: SeverityError},
		{Code: "TCSI_STAFF_MANDATORY_005", FileType: ft, Category: CategoryMandatory, FieldName: "employment_type",
			Description:        "Employment type is required",
			ResolutionGuidance: "Provide the employment type: FULL_TIME, PART_TIME, CASUAL or SESSIONAL.",
			ExampleValue:       "FULL_TIME", DefaultSeverity: SeverityError},
		{Code: "TCSI_STAFF_MANDATORY_006", FileType: ft, Category: CategoryMandatory, FieldName: "staff_category",
			Description:        "Staff category is required",
			ResolutionGuidance: "Provide the staff category: ACADEMIC, PROFESSIONAL or CASUAL.",
			ExampleValue:       "ACADEMIC", DefaultSeverity: SeverityError},

		{Code: "TCSI_STAFF_FORMAT_101", FileType: ft, Category: CategoryFormat, FieldName: "employment_start_date",
			Description:        "Employment dates must be in YYYY-MM-DD format",
			ResolutionGuidance: "Correct the date format to YYYY-MM-DD (e.g., 2020-01-06).",
			ExampleValue:       "2020-01-06", DefaultSeverity: SeverityError,
			AutoFixable:        true, FixFunction: "fixDateFormat"},
		{Code: "TCSI_STAFF_FORMAT_103", FileType: ft, Category: CategoryFormat, FieldName: "fte",
			Description:        "FTE must be a number between 0.01 and 1.0",
			ResolutionGuidance: "Enter the FTE as a decimal between 0.01 and 1.0.",
			ExampleValue:       "0.8", DefaultSeverity: SeverityError},

		{Code: "TCSI_STAFF_REFERENCE_303", FileType: ft, Category: CategoryReferenceData, FieldName: "employment_type",
			Description:        "Invalid employment type or staff category code",
			ResolutionGuidance: "Use FULL_TIME, PART_TIME, CASUAL or SESSIONAL for employment type; ACADEMIC, PROFESSIONAL or CASUAL for staff category.",
			ExampleValue:       "FULL_TIME", DefaultSeverity: SeverityError},

		{Code: "TCSI_STAFF_BUSINESS_201", FileType: ft, Category: CategoryBusinessRule, FieldName: "staff_identifier",
			Description:        "Duplicate staff identifier or employment end date before start date",
			ResolutionGuidance: "Check the staff identifier is unique and that the end date is on or after the start date.",
			ExampleValue:       "1234567890", DefaultSeverity: SeverityError},
		{Code: "TCSI_STAFF_BUSINESS_206", FileType: ft, Category: CategoryBusinessRule, FieldName: "fte",
			Description:        "Full-time staff must have FTE = 1.0",
			ResolutionGuidance: "Change employment_type to PART_TIME or set FTE to 1.0.",
			ExampleValue:       "1.0", DefaultSeverity: SeverityError,
			AutoFixable:        true, FixFunction: "fixFullTimeFTE"},
	}
}

func providerDefinitions() []Definition {
	const ft = records.EntityProvider
	return []Definition{
		{Code: "TCSI_PROVIDER_MANDATORY_001", FileType: ft, Category: CategoryMandatory, FieldName: "provider_code",
			Description:        "Provider code is required and must match PRV followed by 5 digits",
			ResolutionGuidance: "Enter your provider code as issued by the regulator (e.g., PRV12345).",
			ExampleValue:       "PRV12345", DefaultSeverity: SeverityError},
		{Code: "TCSI_PROVIDER_MANDATORY_002", FileType: ft, Category: CategoryMandatory, FieldName: "provider_name",
			Description:        "Provider name is required",
			ResolutionGuidance: "Enter the registered provider name.",
			ExampleValue:       "Example Institute of Technology", DefaultSeverity: SeverityError},
		{Code: "TCSI_PROVIDER_MANDATORY_003", FileType: ft, Category: CategoryMandatory, FieldName: "campus_name",
			Description:        "Campus name is required",
			ResolutionGuidance: "Enter the campus name.",
			ExampleValue:       "City Campus", DefaultSeverity: SeverityError},
	}
}

func unitAttemptDefinitions() []Definition {
	const ft = records.EntityUnitAttempt
	return []Definition{
		{Code: "TCSI_UNITATTEMPT_MANDATORY_001", FileType: ft, Category: CategoryMandatory, FieldName: "student_identifier",
			Description:        "Student identifier (CHESSN) is required",
			ResolutionGuidance: "Link to a valid student CHESSN.",
			ExampleValue:       "1234567890", DefaultSeverity: SeverityError},
		{Code: "TCSI_UNITATTEMPT_MANDATORY_002", FileType: ft, Category: CategoryMandatory, FieldName: "unit_code",
			Description:        "Unit code is required",
			ResolutionGuidance: "Link to a valid unit code.",
			ExampleValue:       "COMP101", DefaultSeverity: SeverityError},
		{Code: "TCSI_UNITATTEMPT_MANDATORY_003", FileType: ft, Category: CategoryMandatory, FieldName: "study_period",
			Description:        "Study period is required",
			ResolutionGuidance: "Provide the study period the attempt belongs to.",
			ExampleValue:       "2025-S1", DefaultSeverity: SeverityError},
		{Code: "TCSI_UNITATTEMPT_MANDATORY_004", FileType: ft, Category: CategoryMandatory, FieldName: "result",
			Description:        "Result is required",
			ResolutionGuidance: "Provide the unit outcome code.",
			ExampleValue:       "P", DefaultSeverity: SeverityError},

		{Code: "TCSI_UNITATTEMPT_REFERENCE_301", FileType: ft, Category: CategoryReferenceData, FieldName: "result",
			Description:        "Invalid result code",
			ResolutionGuidance: "Use a valid result code: P (Pass), F (Fail), W (Withdrawn), N (Not assessed), or one of the graded outcome codes.",
			ExampleValue:       "P", DefaultSeverity: SeverityError},

		{Code: "TCSI_UNITATTEMPT_BUSINESS_201", FileType: ft, Category: CategoryBusinessRule, FieldName: "student_identifier",
			Description:        "Student identifier does not match an existing student",
			ResolutionGuidance: "Create the student record first, or correct the attempt's student identifier.",
			ExampleValue:       "1234567890", DefaultSeverity: SeverityError},
		{Code: "TCSI_UNITATTEMPT_BUSINESS_202", FileType: ft, Category: CategoryBusinessRule, FieldName: "unit_code",
			Description:        "Unit code does not match an existing unit",
			ResolutionGuidance: "Create the unit record first, or correct the attempt's unit code.",
			ExampleValue:       "COMP101", DefaultSeverity: SeverityError},
	}
}
