package seeder

import (
	"context"
	"fmt"

	"project-compass/internal/database"
	"project-compass/internal/domain/project"
)

type ProjectsSeeder struct{}

func (ProjectsSeeder) Name() string { return "projects" }

// Run upserts the starter catalog. Rows are keyed by title so re-running
// the seeder never duplicates projects the admin has since edited.
func (ProjectsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "projects",
		"id", "title", "description", "domain", "tech_stack", "difficulty",
		"tags", "estimated_time", "prerequisites", "learning_outcomes",
		"is_active", "source", "created_at",
	); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, it := range starterCatalog() {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO projects
				(id, title, description, domain, tech_stack, difficulty, tags,
				 estimated_time, prerequisites, learning_outcomes, is_active, source)
			 SELECT gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, 'seed'
			 WHERE NOT EXISTS (SELECT 1 FROM projects WHERE title = $1)`,
			it.Title,
			it.Description,
			it.Domain,
			it.TechStack,
			string(it.Difficulty),
			it.Tags,
			it.EstimatedTime,
			it.Prerequisites,
			it.LearningOutcomes,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func starterCatalog() []project.Project {
	return []project.Project{
		{
			Title:            "E-commerce Website with React & Node.js",
			Description:      "Build a full-stack e-commerce platform with user authentication, product catalog, shopping cart, and payment integration.",
			Domain:           "Web Development",
			TechStack:        []string{"React", "Node.js", "MongoDB", "Express", "Stripe"},
			Difficulty:       project.DifficultyIntermediate,
			Tags:             []string{"full-stack", "e-commerce", "payment-integration"},
			EstimatedTime:    "4-6 weeks",
			Prerequisites:    []string{"JavaScript", "React basics", "Node.js fundamentals"},
			LearningOutcomes: []string{"Full-stack development", "Payment integration", "Database design", "User authentication"},
		},
		{
			Title:            "Machine Learning Chatbot",
			Description:      "Create an intelligent chatbot using natural language processing and machine learning algorithms.",
			Domain:           "Artificial Intelligence",
			TechStack:        []string{"Python", "TensorFlow", "NLTK", "Flask", "Docker"},
			Difficulty:       project.DifficultyAdvanced,
			Tags:             []string{"machine-learning", "nlp", "chatbot"},
			EstimatedTime:    "6-8 weeks",
			Prerequisites:    []string{"Python", "Machine Learning basics", "Statistics"},
			LearningOutcomes: []string{"NLP techniques", "Deep learning", "Model deployment", "API development"},
		},
		{
			Title:            "Personal Finance Tracker Mobile App",
			Description:      "Develop a cross-platform mobile app for tracking personal expenses and financial goals using React Native.",
			Domain:           "Mobile Development",
			TechStack:        []string{"React Native", "Firebase", "Redux", "Chart.js"},
			Difficulty:       project.DifficultyIntermediate,
			Tags:             []string{"mobile-app", "finance", "data-visualization"},
			EstimatedTime:    "3-5 weeks",
			Prerequisites:    []string{"React", "JavaScript", "Mobile development basics"},
			LearningOutcomes: []string{"Mobile app development", "State management", "Data visualization", "Firebase integration"},
		},
		{
			Title:            "IoT Smart Home System",
			Description:      "Build a smart home automation system using Arduino, sensors, and a web dashboard for remote control.",
			Domain:           "Internet of Things",
			TechStack:        []string{"Arduino", "Raspberry Pi", "MQTT", "React", "WebSockets"},
			Difficulty:       project.DifficultyAdvanced,
			Tags:             []string{"iot", "hardware", "automation"},
			EstimatedTime:    "8-10 weeks",
			Prerequisites:    []string{"Electronics basics", "C++", "Networking fundamentals"},
			LearningOutcomes: []string{"IoT architecture", "Hardware programming", "Real-time communication", "System integration"},
		},
		{
			Title:            "Data Visualization Dashboard",
			Description:      "Create an interactive dashboard for data analysis and visualization using modern web technologies.",
			Domain:           "Data Science",
			TechStack:        []string{"Python", "Streamlit", "Pandas", "Plotly", "PostgreSQL"},
			Difficulty:       project.DifficultyBeginner,
			Tags:             []string{"data-visualization", "dashboard", "analytics"},
			EstimatedTime:    "2-3 weeks",
			Prerequisites:    []string{"Python basics", "Data analysis fundamentals"},
			LearningOutcomes: []string{"Data visualization", "Dashboard design", "Database queries", "Statistical analysis"},
		},
		{
			Title:            "Blockchain Voting System",
			Description:      "Develop a secure and transparent voting system using blockchain technology and smart contracts.",
			Domain:           "Blockchain",
			TechStack:        []string{"Solidity", "Ethereum", "Web3.js", "React", "Truffle"},
			Difficulty:       project.DifficultyAdvanced,
			Tags:             []string{"blockchain", "smart-contracts", "voting"},
			EstimatedTime:    "6-8 weeks",
			Prerequisites:    []string{"Blockchain basics", "JavaScript", "Cryptography fundamentals"},
			LearningOutcomes: []string{"Smart contract development", "DApp creation", "Security principles", "Blockchain deployment"},
		},
		{
			Title:            "Task Management PWA",
			Description:      "Build a Progressive Web App for task management with offline capabilities and push notifications.",
			Domain:           "Web Development",
			TechStack:        []string{"React", "PWA", "Service Workers", "IndexedDB", "Push API"},
			Difficulty:       project.DifficultyIntermediate,
			Tags:             []string{"pwa", "offline-first", "task-management"},
			EstimatedTime:    "3-4 weeks",
			Prerequisites:    []string{"React", "JavaScript ES6+", "Web APIs"},
			LearningOutcomes: []string{"PWA development", "Offline functionality", "Push notifications", "Modern web APIs"},
		},
		{
			Title:            "Computer Vision Image Classifier",
			Description:      "Train a deep learning model to classify images using convolutional neural networks.",
			Domain:           "Artificial Intelligence",
			TechStack:        []string{"Python", "TensorFlow", "Keras", "OpenCV", "Jupyter"},
			Difficulty:       project.DifficultyIntermediate,
			Tags:             []string{"computer-vision", "deep-learning", "image-classification"},
			EstimatedTime:    "4-5 weeks",
			Prerequisites:    []string{"Python", "Machine Learning basics", "Linear Algebra"},
			LearningOutcomes: []string{"CNN architecture", "Image preprocessing", "Model training", "Transfer learning"},
		},
	}
}
