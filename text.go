package main

import "github.com/Zachkp/portfolio/chart"

var (
	HeroName    = "Isaac Mendel"
	HeroTagline = "Data analyst and project manager who builds small tools that save other people time."

	AboutMe = `I like turning messy, repetitive work into something a script can do in seconds.
Most of my projects start as a frustration, a job board full of ghost postings or a spreadsheet
nobody wants to update, and end as a tool other people can use without writing any code.

When I'm not analysing data I'm usually reading about **project delivery**, mentoring
career changers, or recording the next episode of my audio introduction.`
)

type project struct {
	Title    string
	Markdown string
	// Asset names from the configuration shown under the write-up.
	Media     []string
	Downloads []string
}

var Projects = []project{
	{
		Title: "LinkedIn Job Seeker Tool",
		Markdown: `The purpose of this tool is to assist LinkedIn job seekers with little to no coding experience.
It helps:

- Decompress the overwhelming number of applications by focusing on suitable roles.
- Avoid ghost jobs and optimize the time spent applying.

This project highlights a proactive approach to problem-solving: instead of complaining about
inefficiencies, take strategic action to address and solve them.`,
		Media:     []string{"explainer-video"},
		Downloads: []string{"job-seeker-code"},
	},
	{
		Title: "LinkedIn Analytics Dashboard",
		Markdown: `Upload a LinkedIn data export and get a word cloud of your connections' job titles,
posting activity over time and a quick summary of who engages with your content.
Built for people who want the numbers without opening a notebook.`,
	},
	{
		Title: "Resume Keyword Matcher",
		Markdown: `Paste a job description and a resume PDF. The tool extracts both texts, highlights
missing keywords and suggests which sections to rewrite first.`,
	},
}

type testimonial struct {
	Quote  string
	Author string
	Role   string
}

var Testimonials = []testimonial{
	{
		Quote:  "Isaac took a process that ate half my week and turned it into a button. I still don't know how.",
		Author: "Priya S.",
		Role:   "Recruiting Lead",
	},
	{
		Quote:  "Clear communicator, calm under deadlines, and the dashboards actually get used.",
		Author: "Marcus L.",
		Role:   "Program Manager",
	},
	{
		Quote:  "The job seeker tool helped me cut my application list in half and land interviews faster.",
		Author: "Dana K.",
		Role:   "Career changer",
	},
}

type toolLink struct {
	Name        string
	URL         string
	Description string
}

var ToolLinks = []toolLink{
	{
		Name:        "LinkedIn Analytics App",
		URL:         "https://linkedin-analytics.streamlit.app",
		Description: "Explore a LinkedIn data export with charts and a word cloud.",
	},
	{
		Name:        "Resume Keyword Matcher",
		URL:         "https://resume-matcher.streamlit.app",
		Description: "Compare a resume against a job description.",
	},
	{
		Name:        "Source on GitHub",
		URL:         "https://github.com/Zachkp/portfolio",
		Description: "Code for this site and the tools above.",
	},
}

// persona drives the certifications chart. Each one emphasises a different
// slice of the same certification history.
type persona struct {
	Key            string
	Name           string
	Certifications chart.Series
}

var Personas = []persona{
	{
		Key:  "data-analyst",
		Name: "Data Analyst",
		Certifications: chart.Series{
			{Category: "Data Analysis", Value: 5},
			{Category: "SQL & Databases", Value: 3},
			{Category: "Data Visualization", Value: 4},
			{Category: "Python Programming", Value: 2},
			{Category: "Machine Learning", Value: 1},
		},
	},
	{
		Key:  "project-manager",
		Name: "Project Manager",
		Certifications: chart.Series{
			{Category: "Project Management", Value: 4},
			{Category: "Agile & Scrum", Value: 3},
			{Category: "Leadership", Value: 2},
			{Category: "Business Analysis", Value: 2},
		},
	},
	{
		Key:  "cloud-engineer",
		Name: "Cloud Engineer",
		Certifications: chart.Series{
			{Category: "Cloud Computing", Value: 3},
			{Category: "Cloud Security", Value: 1},
			{Category: "DevOps & Automation", Value: 2},
			{Category: "Networking Fundamentals", Value: 1},
		},
	},
}

func personaByKey(key string) (persona, bool) {
	for _, p := range Personas {
		if p.Key == key {
			return p, true
		}
	}
	return persona{}, false
}
