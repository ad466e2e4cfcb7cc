package store

import "readtutor/internal/model"

const defaultIntroduction = "Welcome to the personalized English reading " +
	"support system. The system is built around self-regulated learning: " +
	"you plan, practice and reflect in cycles, adjusting your reading " +
	"strategies as you go. It walks you through three stages (planning, " +
	"execution and feedback) and uses your test results to tailor its " +
	"analysis and suggestions to you."

var defaultSelfRateItems = []string{
	"I can understand short, simple stories with the help of pictures and pick out basic facts such as who, when and where.",
	"I can read simple materials such as rhymes and recognize common words.",
	"I can read short texts on familiar topics, locate specific information and understand the main idea.",
	"I can work out the meaning of a short passage that contains new words by using illustrations or other clues.",
	"I can read simple practical texts such as letters, notices and announcements and extract the key information.",
	"I can understand implied meaning in short texts on familiar topics and summarize the main points.",
	"I can follow the relationships between ideas in simple argumentative texts by attending to linking words.",
	"I can read different kinds of simple materials, extract details and summarize the gist.",
	"I can distinguish facts from opinions in narrative and argumentative texts and draw simple inferences.",
	"I can understand fairly complex materials by analyzing sentence and text structure.",
	"I can grasp the theme of fairly complex materials on education, science or culture and notice their language features.",
	"I can follow fairly complex discursive writing such as commentary and reviews and tell different viewpoints apart.",
	"I can read complex materials in my own field, such as literary works or news reports, and evaluate language and content in a simple way.",
	"I can infer the author's attitude from fairly complex literary works and news reports.",
	"I can locate target information accurately by scanning the index of professional literature.",
	"I can integrate content across complex, specialized materials and analyze the author's position.",
}

var defaultStrategyItems = []string{
	"I preview the reading material before I begin to read.",
	"Before I begin reading, I think about the topic to see what I already know about it.",
	"I try to predict what the material is about when I read.",
	"While I am reading, I periodically check if the material is making sense to me.",
	"I adjust my reading speed according to what I'm reading.",
}

// seedSurveys inserts the default introduction and questionnaire items
// when their tables are empty. Runs once per New.
func (s *Store) seedSurveys() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM introduction`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		if _, err := s.db.Exec(`INSERT INTO introduction (content) VALUES (?)`, defaultIntroduction); err != nil {
			return err
		}
	}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM self_rate_items`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		for i, item := range defaultSelfRateItems {
			if _, err := s.db.Exec(`INSERT INTO self_rate_items (id, content) VALUES (?, ?)`, i+1, item); err != nil {
				return err
			}
		}
	}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM strategy_items`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		for i, item := range defaultStrategyItems {
			if _, err := s.db.Exec(`INSERT INTO strategy_items (id, content) VALUES (?, ?)`, i+1, item); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetIntroduction returns the system introduction text.
func (s *Store) GetIntroduction() (string, error) {
	var content string
	err := s.db.QueryRow(`SELECT content FROM introduction LIMIT 1`).Scan(&content)
	return content, err
}

// ListSelfRateItems returns the self-rate questionnaire in id order.
func (s *Store) ListSelfRateItems() ([]model.SurveyItem, error) {
	return s.listSurvey(`SELECT id, content FROM self_rate_items ORDER BY id`)
}

// ListStrategyItems returns the strategy questionnaire in id order.
func (s *Store) ListStrategyItems() ([]model.SurveyItem, error) {
	return s.listSurvey(`SELECT id, content FROM strategy_items ORDER BY id`)
}

func (s *Store) listSurvey(query string) ([]model.SurveyItem, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.SurveyItem
	for rows.Next() {
		var item model.SurveyItem
		if err := rows.Scan(&item.ID, &item.Content); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
