package server

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BigHat-Biosciences/NanoNet/internal/encode"
	"github.com/BigHat-Biosciences/NanoNet/internal/fasta"
	"github.com/BigHat-Biosciences/NanoNet/internal/pdb"
	"github.com/BigHat-Biosciences/NanoNet/internal/predict"
)

type predictRequest struct {
	Name     string `json:"name"`
	Sequence string `json:"sequence"`
	Type     string `json:"type"`
}

type predictResponse struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Length   int      `json:"length"`
	Warnings []string `json:"warnings,omitempty"`
	PDB      string   `json:"pdb"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) modelInfo(c *gin.Context) {
	info := gin.H{
		"repository": s.cfg.Model.Repository,
		"types":      s.types(),
		"max_length": encode.MaxLength,
	}
	if s.cfg.Model.CommitSHA != "" {
		info["commit_sha"] = s.cfg.Model.CommitSHA
	}
	if s.card.Name != "" {
		info["name"] = s.card.Name
	}
	if s.card.Version != "" {
		info["version"] = s.card.Version
	}
	if s.card.License != "" {
		info["license"] = s.card.License
	}
	if s.card.Description != "" {
		info["description"] = s.card.Description
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) predictHandler(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	seq := fasta.CleanSequence(req.Sequence)
	if seq == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sequence is required"})
		return
	}

	chainType := req.Type
	if chainType == "" {
		chainType = TypeNanobody
	}
	weightsDir, ok := s.weights[chainType]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("unknown chain type %q, supported: %v", chainType, s.types()),
		})
		return
	}

	matrix, err := encode.Matrix(seq)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := fasta.CleanName(req.Name)
	if name == "" {
		name = "seq"
	}

	var warnings []string
	if encode.HasUnknown(seq) {
		warnings = append(warnings, "sequence contains unknown residues (X), prediction accuracy may degrade")
	}

	resp, err := s.runner.Predict(c.Request.Context(), &predict.Request{
		ModelDir: weightsDir,
		Inputs:   []predict.Input{{Name: name, Matrix: matrix}},
	})
	if err != nil {
		s.log.Printf("prediction for %s failed: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
		return
	}

	var buf bytes.Buffer
	if err := pdb.WriteBackbone(&buf, seq, resp.Predictions[0].Coords); err != nil {
		s.log.Printf("serialize %s failed: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
		return
	}

	if c.Query("format") == "pdb" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdb.BackboneFile(name)))
		c.Data(http.StatusOK, "chemical/x-pdb", buf.Bytes())
		return
	}

	c.JSON(http.StatusOK, predictResponse{
		Name:     name,
		Type:     chainType,
		Length:   len(seq),
		Warnings: warnings,
		PDB:      buf.String(),
	})
}
