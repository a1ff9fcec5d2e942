package seed

import "github.com/bathudi/admissions/internal/app/models"

// Catalog is the standard course catalog of the center. The titles contain
// the fragments of config.DefaultCourseKeyMapping so application-form keys resolve.
func Catalog() []models.Course {
	return []models.Course{
		{
			Title:            "Occupational Certificate: Automotive Engine Repairer",
			ShortTitle:       "Engine Repairer",
			Description:      "Comprehensive training program focused on automotive engine repair, diagnosis, and overhaul. Students learn to diagnose engine problems, perform repairs, and conduct engine testing procedures.",
			ShortDescription: "Master automotive engine repair and diagnostics",
			Duration:         "6 months",
			Credits:          80,
			Level:            models.CourseLevelIntermediate,
			DepositAmount:    4416.67,
			MonthlyPayment:   1472.22,
			TotalPayment:     17633.33,
			AssessmentFee:    441.67,
			Fee:              17633.33,
			RegistrationFee:  200,
			Curriculum: "Module 1: Engine Fundamentals\n- Engine types and classifications\n- 4-stroke and 2-stroke principles\n- Engine components and functions\n\n" +
				"Module 2: Engine Diagnosis\n- Diagnostic equipment\n- Symptom analysis\n- Compression and leak-down testing\n\n" +
				"Module 3: Engine Repair\n- Cylinder head repair\n- Block repair\n- Crankshaft and camshaft service\n\n" +
				"Module 4: Engine Assembly\n- Assembly procedures\n- Torque specifications\n- Timing and adjustments\n\n" +
				"Module 5: Engine Testing\n- Performance testing\n- Oil pressure testing\n- Vacuum testing",
			Prerequisites:       "Grade 11 or equivalent. Basic understanding of mechanical systems.",
			Requirements:        "Certified ID copy, Grade 11/Matric certificate, Registration fee of R661.25",
			CareerOpportunities: "Engine Repair Technician, Workshop Assistant, Service Technician, Automotive Mechanic",
			IsFeatured:          true,
			IsActive:            true,
			DisplayOrder:        1,
		},
		{
			Title:            "Occupational Certificate: Automotive Clutch and Brake Repairer",
			ShortTitle:       "Clutch & Brake",
			Description:      "Specialized training program focusing on automotive clutch and brake systems. Covers diagnosis, repair, and maintenance of braking systems, clutch assemblies, and related hydraulic components.",
			ShortDescription: "Specialize in clutch and brake system repair",
			Duration:         "5 months",
			Credits:          70,
			Level:            models.CourseLevelBeginner,
			DepositAmount:    3677.78,
			MonthlyPayment:   1225.93,
			TotalPayment:     14666.67,
			AssessmentFee:    367.78,
			Fee:              14666.67,
			RegistrationFee:  200,
			Curriculum: "Module 1: Brake System Fundamentals\n- Hydraulic brake systems\n- Disc and drum brakes\n- Master cylinders and calipers\n\n" +
				"Module 2: ABS and Electronic Brakes\n- ABS components\n- Electronic brake distribution\n- Traction control\n\n" +
				"Module 3: Clutch Systems\n- Manual transmission clutches\n- Hydraulic clutch systems\n- Clutch adjustment\n\n" +
				"Module 4: Diagnosis and Repair\n- Brake system diagnosis\n- Clutch system troubleshooting\n- Component replacement\n\n" +
				"Module 5: Safety and Testing\n- Brake testing procedures\n- Safety standards\n- Quality control",
			Prerequisites:       "Grade 10 certificate. Attention to detail for safety-critical systems.",
			Requirements:        "Certified ID copy, Grade 10 certificate, Registration fee of R661.25",
			CareerOpportunities: "Brake Technician, Clutch Specialist, Automotive Repairer, Service Technician",
			IsFeatured:          true,
			IsActive:            true,
			DisplayOrder:        2,
		},
		{
			Title:            "Occupational Certificate: Automotive Suspension Fitter",
			ShortTitle:       "Suspension Fitter",
			Description:      "Specialized training program focusing on automotive suspension systems, steering components, and wheel alignment. Students learn to diagnose, repair, and maintain suspension systems for various vehicle types.",
			ShortDescription: "Become an expert in suspension and steering systems",
			Duration:         "6 months",
			Credits:          80,
			Level:            models.CourseLevelIntermediate,
			DepositAmount:    4416.67,
			MonthlyPayment:   1472.22,
			TotalPayment:     17633.33,
			AssessmentFee:    441.67,
			Fee:              17633.33,
			RegistrationFee:  200,
			Curriculum: "Module 1: Suspension Fundamentals\n- Suspension types and designs\n- Shock absorbers and struts\n- Springs and stabilizers\n\n" +
				"Module 2: Steering Systems\n- Manual and power steering\n- Steering linkage\n- Steering geometry\n\n" +
				"Module 3: Wheel Alignment\n- Alignment principles\n- 4-wheel alignment\n- Adjustment procedures\n\n" +
				"Module 4: Advanced Suspension\n- Air suspension\n- Electronic suspension\n- Performance suspension\n\n" +
				"Module 5: Diagnosis and Repair\n- Suspension troubleshooting\n- Component replacement\n- System testing",
			Prerequisites:       "Grade 11 certificate. Basic automotive knowledge.",
			Requirements:        "Certified ID copy, Grade 11/Matric certificate, Registration fee of R661.25",
			CareerOpportunities: "Suspension Technician, Wheel Alignment Specialist, Automotive Repairer, Chassis Specialist",
			IsFeatured:          true,
			IsActive:            true,
			IsMathRequired:      true,
			DisplayOrder:        3,
		},
		{
			Title:            "Occupational Certificate: Automotive Workshop Assistant",
			ShortTitle:       "Workshop Assistant",
			Description:      "Foundational training program for automotive workshop operations. Covers workshop safety, basic maintenance, tool usage, and assistance procedures for automotive repair and maintenance.",
			ShortDescription: "Start your career as an automotive workshop assistant",
			Duration:         "4 months",
			Credits:          60,
			Level:            models.CourseLevelBeginner,
			DepositAmount:    2944.44,
			MonthlyPayment:   981.48,
			TotalPayment:     11733.33,
			AssessmentFee:    294.44,
			Fee:              11733.33,
			RegistrationFee:  200,
			Curriculum: "Module 1: Workshop Basics\n- Workshop safety procedures\n- Tool identification and usage\n- Workshop organization\n\n" +
				"Module 2: Vehicle Maintenance\n- Basic maintenance procedures\n- Fluid checks and changes\n- Tire service and repair\n\n" +
				"Module 3: Assistance Skills\n- Technician assistance\n- Parts handling and identification\n- Customer service basics\n\n" +
				"Module 4: Workshop Operations\n- Inventory management\n- Workshop cleaning\n- Safety compliance\n\n" +
				"Module 5: Basic Repairs\n- Simple repairs and adjustments\n- Component replacement\n- Quality checks",
			Prerequisites:       "No prior experience required. Interest in automotive work.",
			Requirements:        "Certified ID copy, Grade 9 certificate, Registration fee of R661.25",
			CareerOpportunities: "Workshop Assistant, Maintenance Assistant, Service Helper, Automotive Apprentice",
			IsFeatured:          true,
			IsActive:            true,
			DisplayOrder:        4,
		},
	}
}
