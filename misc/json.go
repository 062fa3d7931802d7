package misc

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
)

func BindJSON(c *gin.Context, v interface{}) error {
	body := c.Request.Body
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

type Status struct {
	Status string `json:"status"`
	Msg    string `json:"msg,omitempty"`
	Id     string `json:"id,omitempty"`
}

func StatusOK(id string) *Status {
	return &Status{Status: "success", Id: id}
}

func StatusErr(msg string) *Status {
	return &Status{Status: "error", Msg: msg}
}
