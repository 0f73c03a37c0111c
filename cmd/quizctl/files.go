package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mind-engage/mindengage-quiz/internal/answer"
	"github.com/mind-engage/mindengage-quiz/internal/question"
)

// A question file is either a bare list of questions or a quiz document with
// a "questions" key. JSON input is read by the same YAML decoder.
type quizDoc struct {
	Title     string              `yaml:"title"`
	Questions []question.Question `yaml:"questions"`
}

type answersDoc struct {
	Answers []answer.Answer `yaml:"answers"`
}

func readNode(path string) (*yaml.Node, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, errors.New("empty document")
	}
	return doc.Content[0], nil
}

func loadQuestions(path string) ([]question.Question, error) {
	n, err := readNode(path)
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case yaml.SequenceNode:
		var qs []question.Question
		if err := n.Decode(&qs); err != nil {
			return nil, err
		}
		return qs, nil
	case yaml.MappingNode:
		var d quizDoc
		if err := n.Decode(&d); err != nil {
			return nil, err
		}
		return d.Questions, nil
	}
	return nil, fmt.Errorf("expected a list of questions or a quiz document")
}

func loadAnswers(path string) ([]answer.Answer, error) {
	n, err := readNode(path)
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case yaml.SequenceNode:
		var as []answer.Answer
		if err := n.Decode(&as); err != nil {
			return nil, err
		}
		return as, nil
	case yaml.MappingNode:
		var d answersDoc
		if err := n.Decode(&d); err != nil {
			return nil, err
		}
		return d.Answers, nil
	}
	return nil, fmt.Errorf("expected a list of answers or an answers document")
}
