package profile

// Skill catalog used to recognise technologies in profiles and postings.
// Category keys are iterated through CatalogCategories to keep derived output
// deterministic.

var CatalogCategories = []string{
	"programming_languages",
	"web_frameworks",
	"databases",
	"cloud_platforms",
	"data_science",
	"devops",
	"ai_ml",
}

var TechSkills = map[string][]string{
	"programming_languages": {
		"python", "java", "javascript", "typescript", "c++", "c#", "go", "rust",
		"php", "ruby", "swift", "kotlin", "scala", "r", "matlab", "sql",
	},
	"web_frameworks": {
		"react", "angular", "vue", "nodejs", "express", "django", "flask",
		"spring", "laravel", "rails", "fastapi",
	},
	"databases": {
		"postgresql", "mysql", "mongodb", "redis", "cassandra", "dynamodb",
		"sqlite", "oracle", "mariadb", "elasticsearch",
	},
	"cloud_platforms": {
		"aws", "azure", "gcp", "google cloud", "heroku", "digitalocean",
		"kubernetes", "docker", "terraform",
	},
	"data_science": {
		"pandas", "numpy", "scikit-learn", "tensorflow", "pytorch", "keras",
		"matplotlib", "jupyter", "apache spark", "opencv",
		"deep learning", "machine learning", "computer vision",
	},
	"devops": {
		"git", "jenkins", "circleci", "gitlab", "github actions",
		"ansible", "puppet", "chef", "github",
	},
	"ai_ml": {
		"llm", "prompt engineering", "generative ai", "artificial intelligence",
		"data mining", "statistical modeling",
	},
}

// CategoryDomain maps a skill category to the broad search domain used by
// category-based query generation.
var CategoryDomain = map[string]string{
	"web_frameworks":  "web development intern",
	"data_science":    "data science intern",
	"cloud_platforms": "cloud engineer intern",
	"databases":       "database developer intern",
}
