package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/quantprep/internal/llm"
	"github.com/abhisek/quantprep/internal/questiongen"
)

// connectivityPrompt is the default prompt for the diagnostics endpoint.
const connectivityPrompt = "Say 'Hello, AI is working!'"

type generateRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
}

// generateQuestion handles POST /generate_question.
// Both fields are optional; unknown difficulty is rejected with 400
// before any upstream call.
func (s *Server) generateQuestion(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}

	var difficulty questiongen.Difficulty
	if strings.TrimSpace(req.Difficulty) != "" {
		d, err := questiongen.ParseDifficulty(req.Difficulty)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		difficulty = d
	}

	q, err := s.opts.Generator.Generate(c.Request.Context(), strings.TrimSpace(req.Topic), difficulty)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, q)
}

type evaluateRequest struct {
	QuestionData  *questiongen.Question `json:"question_data" binding:"required"`
	StudentAnswer string                `json:"student_answer" binding:"required"`
}

// evaluateAnswer handles POST /evaluate_answer.
// question_data shape problems surface as 400 from the evaluator before
// it spends an upstream call; an unrecognized student answer label is a
// wrong answer, not an error.
func (s *Server) evaluateAnswer(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid 'question_data' or 'student_answer': " + err.Error()})
		return
	}

	res, err := s.opts.Evaluator.Evaluate(c.Request.Context(), req.QuestionData, req.StudentAnswer)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

type testLLMRequest struct {
	Prompt string `json:"prompt"`
}

// testLLM handles POST /test_llm: a free-text pass-through for
// connectivity diagnostics. No schema, no validation, no retry.
func (s *Server) testLLM(c *gin.Context) {
	var req testLLMRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid JSON body: " + err.Error()})
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		prompt = connectivityPrompt
	}

	ctx := llm.WithPurpose(c.Request.Context(), "connectivity")
	if s.opts.TestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.TestTimeout)
		defer cancel()
	}

	resp, err := s.opts.Provider.Generate(ctx, llm.Request{
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens: 256,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "response": string(resp.Content)})
}

// healthz is a liveness probe for the automation platform.
func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
