package about

// About describes the project behind the service.
type About struct {
	Name        string `json:"name" doc:"Project name" example:"Spring Boot"`
	Description string `json:"description" doc:"One-line project summary"`
	Website     string `json:"website" format:"uri" doc:"Project home page" example:"https://spring.io/projects/spring-boot"`
}

// Project is the fixed payload of GET /about.json.
var Project = About{
	Name:        "Spring Boot",
	Description: "Spring Boot is a Spring module which provides RAD (Rapid Application Development) feature to Spring framework.",
	Website:     "https://spring.io/projects/spring-boot",
}
