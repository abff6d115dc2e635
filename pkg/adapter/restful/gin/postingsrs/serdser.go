package postingsrs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/job-alerts/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/job-alerts/pkg/core/cerr"
	"github.com/momeni/job-alerts/pkg/core/model"
)

// jCoordinate is the REST representation of an optional posting
// location; the model keeps coordinates out of the JSON tags, so they
// are flattened here explicitly.
type jCoordinate struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// jPosting is the REST representation of a job posting.
type jPosting struct {
	ID              string            `json:"id,omitempty"`
	Title           string            `json:"title"`
	EmployerName    string            `json:"employerName"`
	JobType         string            `json:"jobType"`
	Description     string            `json:"description"`
	EmployerEmail   string            `json:"employerEmail"`
	EmployerContact string            `json:"employerContact"`
	Positions       uint              `json:"numberOfPositions"`
	Location        *jCoordinate      `json:"location,omitempty"`
	Address         model.Address     `json:"address"`
	CreatedBy       model.PostingUser `json:"createdBy,omitempty"`
}

// serPosting converts the p model instance to its REST representation.
func serPosting(p model.JobPosting) jPosting {
	jp := jPosting{
		ID:              p.ID,
		Title:           p.Title,
		EmployerName:    p.EmployerName,
		JobType:         p.JobType,
		Description:     p.Description,
		EmployerEmail:   p.EmployerEmail,
		EmployerContact: p.EmployerContact,
		Positions:       p.Positions,
		Address:         p.Address,
		CreatedBy:       p.CreatedBy,
	}
	if p.Location != nil {
		jp.Location = &jCoordinate{
			Lat: p.Location.Lat,
			Lon: p.Location.Lon,
		}
	}
	return jp
}

// serPostings converts a postings slice to its REST representation,
// preserving the order. A nil slice serializes as an empty array.
func serPostings(ps []model.JobPosting) []jPosting {
	jps := make([]jPosting, len(ps))
	for i, p := range ps {
		jps[i] = serPosting(p)
	}
	return jps
}

type rawPostingReq struct {
	Title           string        `json:"title" binding:"required"`
	EmployerName    string        `json:"employerName" binding:"required"`
	JobType         string        `json:"jobType" binding:"required"`
	Description     string        `json:"description"`
	EmployerEmail   string        `json:"employerEmail" binding:"omitempty,email"`
	EmployerContact string        `json:"employerContact"`
	Positions       uint          `json:"numberOfPositions" binding:"omitempty,gt=0"`
	Location        *jCoordinate  `json:"location" binding:"omitempty"`
	Address         model.Address `json:"address"`
}

type rawPatchReq struct {
	Title           *string        `json:"title"`
	EmployerName    *string        `json:"employerName"`
	JobType         *string        `json:"jobType"`
	Description     *string        `json:"description"`
	EmployerEmail   *string        `json:"employerEmail" binding:"omitempty,email"`
	EmployerContact *string        `json:"employerContact"`
	Positions       *uint          `json:"numberOfPositions" binding:"omitempty,gt=0"`
	Location        *jCoordinate   `json:"location"`
	Address         *model.Address `json:"address"`
}

// DserToken extracts the mandatory bearer credential of the c request,
// serializing a 401 response when it is absent.
func (rs *resource) DserToken(c *gin.Context) (string, bool) {
	token := serdser.BearerToken(c)
	if token == "" {
		serdser.SerErr(c, cerr.Unauthorized(
			errors.New("missing bearer credential"),
		))
		return "", false
	}
	return token, true
}

func (rs *resource) DserPostingReq(c *gin.Context) *model.JobPosting {
	req := &rawPostingReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	p := &model.JobPosting{
		Title:           req.Title,
		EmployerName:    req.EmployerName,
		JobType:         req.JobType,
		Description:     req.Description,
		EmployerEmail:   req.EmployerEmail,
		EmployerContact: req.EmployerContact,
		Positions:       req.Positions,
		Address:         req.Address,
	}
	if req.Location != nil {
		p.Location = &model.Coordinate{
			Lat: req.Location.Lat,
			Lon: req.Location.Lon,
		}
	}
	return p
}

func (rs *resource) DserPatchReq(c *gin.Context) *model.PostingPatch {
	req := &rawPatchReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	patch := &model.PostingPatch{
		Title:           req.Title,
		EmployerName:    req.EmployerName,
		JobType:         req.JobType,
		Description:     req.Description,
		EmployerEmail:   req.EmployerEmail,
		EmployerContact: req.EmployerContact,
		Positions:       req.Positions,
		Address:         req.Address,
	}
	if req.Location != nil {
		patch.Location = &model.Coordinate{
			Lat: req.Location.Lat,
			Lon: req.Location.Lon,
		}
	}
	var errs map[string][]string
	if patch.Title != nil {
		serdser.Assert(
			&errs, *patch.Title != "", "title",
			"The title may not be emptied.",
		)
	}
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return patch
}
